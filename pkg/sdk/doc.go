// Package fedsearch embeds the federated search engine in a Go program.
//
// A Client searches reports, data entries, documents and comments stored
// in a SQLite record store, ranks the matches with one relevance function
// and keeps a short per-caller history of recent queries in memory, Redis
// or Valkey.
//
//	client, _ := fedsearch.New(ctx,
//	    fedsearch.WithSQLite("records.db"),
//	    fedsearch.WithValkey("localhost:6379", ""),
//	)
//	defer client.Close()
//
//	results, _ := client.Search(ctx, fedsearch.Query{
//	    Tenant: "org-1",
//	    Caller: "user-7",
//	    Term:   "annual",
//	    Type:   fedsearch.KindReport,
//	})
//	recent, _ := client.Recent(ctx, "org-1", "user-7")
package fedsearch
