// Package printing converts invoice HTML into PDF documents through a
// headless Chrome driven by chromedp.
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{RemoteURL: "ws://chrome:9222"})
//	if err != nil {
//	    return err
//	}
//	defer renderer.Close()
//
//	result, err := renderer.Render(ctx, &RenderRequest{HTML: html, Margins: DefaultMargins()})
package printing
