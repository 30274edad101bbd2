// Package integrations provides HTTP clients for the remote kolam design
// service.
//
// # Overview
//
// The design service owns the pattern algorithms this module does not
// implement (L-system, suzhi, kambi and group-theory designs) and the image
// analysis. Its client lives in a subpackage:
//
//   - [kolamkar]: generation, image-to-design and image analysis
//
// # Shared Infrastructure
//
// [Client] posts JSON and returns the raw response body. It never retries:
// every call is sent once, and a non-2xx answer comes back as an
// [errors.RemoteError] whose message is the service's response text.
// Successful results can be memoized with [Client.Cached] on top of any
// [cache.Cache]. Request timing is reported through
// [observability.HTTPHooks].
//
//	c := integrations.NewClient(fileCache, nil)
//	svg, err := c.PostJSON(ctx, base+"/generate-kolam-svg", body)
//
// [kolamkar]: github.com/matzehuels/kolam/pkg/integrations/kolamkar
// [errors.RemoteError]: github.com/matzehuels/kolam/pkg/errors.RemoteError
// [cache.Cache]: github.com/matzehuels/kolam/pkg/cache.Cache
// [observability.HTTPHooks]: github.com/matzehuels/kolam/pkg/observability.HTTPHooks
package integrations
