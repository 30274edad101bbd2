// Package kolamkar provides an HTTP client for the kolam design service.
//
// # Overview
//
// The service draws the designs this module does not compute locally and
// analyzes photographs of hand-drawn kolams. Three endpoints are used:
//
//   - POST /generate-kolam-svg: pattern parameters plus a design family → SVG
//   - POST /generate-from-image: {"image": dataURL} → SVG
//   - POST /analyze-kolam-image: {"image": dataURL} → [Report]
//
// # Usage
//
//	client, err := kolamkar.NewClient(fileCache, "http://localhost:8000")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	svg, err := client.Generate(ctx, kolam.DefaultParams(), design.DefaultKambi(), false)
//
//	img, err := kolamkar.PrepareImage(photo, kolamkar.DefaultMaxImageSize)
//	report, err := client.Analyze(ctx, img, false)
//
// # Failures
//
// Nothing is retried. A non-2xx response is returned as an
// [errors.RemoteError] whose Error() is the response body, so a service
// message such as "server error" reaches the user unchanged. Failed calls
// are never cached.
//
// [errors.RemoteError]: github.com/matzehuels/kolam/pkg/errors.RemoteError
package kolamkar
