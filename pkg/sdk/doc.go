// Package sdk provides a typed HTTP client for the gem5 resources API.
//
// The client wraps the read-only catalog endpoints: single and batch
// lookups by id + resource_version, and free-text search with
// must-include filters.
//
//	client, _ := sdk.New("http://localhost:8080")
//
//	revisions, _ := client.GetResource(ctx, "riscv-boot-exit")
//	pinned, _ := client.GetResource(ctx, "riscv-boot-exit", sdk.WithVersion("1.0.0"))
//
//	pair, _ := client.GetResourcesBatch(ctx, []sdk.Key{
//	    {ID: "riscv-boot-exit", Version: "1.0.0"},
//	    {ID: "x86-ubuntu-img", Version: "2.0.0"},
//	})
//
//	hits, _ := client.Search(ctx, sdk.SearchParams{
//	    ContainsStr: "boot",
//	    MustInclude: "architecture,RISCV",
//	    PageSize:    10,
//	})
//
// Non-2xx responses surface as *APIError carrying the server's error
// message; check them with errors.Is against ErrNotFound or ErrBadRequest.
//
// For running queries against a catalog store directly, without a server,
// see the root resources package.
package sdk
