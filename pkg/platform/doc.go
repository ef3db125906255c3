// Package platform provides the host services a form depends on: the form
// action URL, token minting and verification bound to the visitor's
// session, string translation and the rejection page shown when a token
// check fails.
//
// A Site is configured once per process; Site.ForRequest scopes it to an
// incoming request and is what forms are built with:
//
//	site, err := platform.NewSite(cfg, platform.WithLogger(logger))
//	...
//	services := site.ForRequest(r)
//	f := services.NewForm()
//	f.SetID("settings")
//	if f.IsSubmission(r) {
//		if err := f.AcceptSubmission(r); err != nil {
//			services.Reject(w, err)
//			return
//		}
//	}
package platform
