package descriptions

import "sort"

// Tool names exposed over MCP.
const (
	ToolExtractRecords = "pdf_extract_records"
	ToolPreviewRecords = "pdf_preview_records"
	ToolServerInfo     = "pdf_server_info"
)

// Tool descriptions with practical examples and use cases

const (
	PDFExtractRecordsDescription = `Extract court-deposit statement records from a PDF into a zipped CSV table.

**When to use:** A bank or court statement PDF lists deposits one per line and the lines are needed as a spreadsheet.

**Why it's useful:** Reads the document in page batches so large statements never sit in memory at once, recognises every line that carries a process number, nature code, dates, reference period, condition and the two amount columns, and writes them to a semicolon separated table.

**Examples:**
• Convert a monthly statement: "Extract the records from extrato-2024-03.pdf"
• Tune batching for a very long file: "Extract records from anual.pdf with batch_size 50"

**Output:** record, page and batch counts plus the path of the converted_<token>.zip written to the output directory. The archive holds a single all_parts.csv with the columns Processo;Nat.;Data 1 - Nº Pedido;Periodo;Data 2;Condicao;Valor Pago;Saldo.

**Best practices:** Run pdf_preview_records first on an unfamiliar layout to confirm lines are recognised. Lines that do not match the full statement layout are skipped silently.`

	PDFPreviewRecordsDescription = `Show the first statement records of a PDF without writing an archive.

**When to use:** Check that a document's lines are recognised before converting it, or look up a few rows quickly.

**Why it's useful:** Runs the same batch pipeline as pdf_extract_records but stops as soon as enough records are found, so previews of long documents stay fast.

**Examples:**
• Sanity check: "Preview the records in extrato.pdf"
• Look at more rows: "Preview 50 records from extrato.pdf"

**Output:** the table header followed by up to limit rows, semicolon separated, and whether more records are available.

**Best practices:** Keep limit small; use pdf_extract_records for the complete table.`

	PDFServerInfoDescription = `Get server configuration and the PDFs available for conversion.

**When to use:** At the start of a session to learn which directory is served, where archives are written and which files can be converted.

**Why it's useful:** Lists the configured directories, size and batch limits, the first PDFs found in the served directory and every available tool.

**Best practices:** Paths passed to the other tools may be relative to the served directory shown here.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	ToolExtractRecords: PDFExtractRecordsDescription,
	ToolPreviewRecords: PDFPreviewRecordsDescription,
	ToolServerInfo:     PDFServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the names of all available tools in sorted order
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
