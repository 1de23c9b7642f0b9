// Package printing renders check requests and memoranda to HTML and PDF.
//
// This package contains:
//   - TemplateEngine, html/template with amount helpers (amountToWords, formatMoney)
//   - the embedded default layouts for each document type
//   - PDFRenderer and the chromedp implementation
//   - PDFStorage with file system and object storage implementations
//
// Example usage:
//
//	engine := NewTemplateEngine(WithFormatter(formatter))
//	tmpl, _ := ResolveTemplate(printing.DocTypeCheckRequest, "")
//	html, err := engine.Render(ctx, &RenderTemplateRequest{Template: tmpl, Data: checkRequest})
//	if err != nil {
//	    return err
//	}
//	renderer := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	defer renderer.Close()
//	pdf, err := renderer.Render(ctx, &RenderRequest{
//	    HTML:      html.HTML,
//	    PaperSize: tmpl.PaperSize,
//	    Margins:   tmpl.Margins,
//	})
package printing
