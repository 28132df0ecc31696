// Package reqctx carries per-request state for application services.
//
// Reads are memoized: the first GetOrFetch for a key runs the fetch and
// later calls in the same request reuse the value, so the static and custom
// content sources are loaded at most once per request even when a handler
// asks for a listing and its facets.
//
//	rc := reqctx.Ensure(ctx)
//	entries, err := reqctx.Fetch(rc, "content:static:blog", loadStatic)
//
// Writes are staged as Actions and run in order by Commit. When an action
// fails, the ones already executed are rolled back in reverse order:
//
//	_ = rc.AddAction(saveQuote)
//	_ = rc.AddAction(clearCart)
//	if err := rc.Commit(ctx); err != nil {
//	    // the quote row has been removed again
//	}
package reqctx
