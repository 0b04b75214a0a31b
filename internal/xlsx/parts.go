package xlsx

import (
	"bytes"
	"fmt"
)

// Container part names. The codec treats these as opaque path-like strings;
// only the sheetN pattern carries meaning (positional, document order).
const (
	partContentTypes  = "[Content_Types].xml"
	partRels          = "_rels/.rels"
	partWorkbookRels  = "xl/_rels/workbook.xml.rels"
	partWorkbook      = "xl/workbook.xml"
	partStyles        = "xl/styles.xml"
	partSharedStrings = "xl/sharedStrings.xml"
)

const xmlHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"yes\"?>\n"

const (
	nsMain          = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPkgRels       = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
)

func sheetPart(pos int) string {
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", pos)
}

// stylesXML carries exactly two cell formats: 0 = normal, 1 = bold. Header
// cells reference style 1.
const stylesXML = xmlHeader +
	`<styleSheet xmlns="` + nsMain + `">` +
	`<fonts count="2">` +
	`<font><sz val="11"/><name val="Calibri"/></font>` +
	`<font><b/><sz val="11"/><name val="Calibri"/></font>` +
	`</fonts>` +
	`<fills count="1"><fill><patternFill patternType="none"/></fill></fills>` +
	`<borders count="1"><border/></borders>` +
	`<cellStyleXfs count="1"><xf/></cellStyleXfs>` +
	`<cellXfs count="2">` +
	`<xf fontId="0" fillId="0" borderId="0" xfId="0"/>` +
	`<xf fontId="1" fillId="0" borderId="0" xfId="0" applyFont="1"/>` +
	`</cellXfs>` +
	`</styleSheet>`

const relsXML = xmlHeader +
	`<Relationships xmlns="` + nsPkgRels + `">` +
	`<Relationship Id="rId1" Type="` + nsRelationships + `/officeDocument" Target="xl/workbook.xml"/>` +
	`</Relationships>`

func contentTypesXML(sheetCount int) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<Types xmlns=%q>`, nsContentTypes)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>`)
	b.WriteString(`<Override PartName="/xl/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"/>`)
	b.WriteString(`<Override PartName="/xl/sharedStrings.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"/>`)
	for i := 1; i <= sheetCount; i++ {
		fmt.Fprintf(&b, `<Override PartName="/xl/worksheets/sheet%d.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>`, i)
	}
	b.WriteString(`</Types>`)
	return b.Bytes()
}

func workbookRelsXML(sheetCount int) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<Relationships xmlns=%q>`, nsPkgRels)
	fmt.Fprintf(&b, `<Relationship Id="rIdStyles" Type="%s/styles" Target="styles.xml"/>`, nsRelationships)
	fmt.Fprintf(&b, `<Relationship Id="rIdStrings" Type="%s/sharedStrings" Target="sharedStrings.xml"/>`, nsRelationships)
	for i := 1; i <= sheetCount; i++ {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s/worksheet" Target="worksheets/sheet%d.xml"/>`, i, nsRelationships, i)
	}
	b.WriteString(`</Relationships>`)
	return b.Bytes()
}

func workbookXML(names []string) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<workbook xmlns=%q xmlns:r=%q><sheets>`, nsMain, nsRelationships)
	for i, name := range names {
		fmt.Fprintf(&b, `<sheet name="%s" sheetId="%d" r:id="rId%d"/>`, escapeXML(name), i+1, i+1)
	}
	b.WriteString(`</sheets></workbook>`)
	return b.Bytes()
}
