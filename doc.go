// Package avyna is the composition root of the Avyna symptom tracking client.
//
// It connects the domain (pkg/core) with its adapters: the JSON/HTTP API
// client (pkg/adapters/rest), the on-disk session store (pkg/adapters/fs)
// and the request cache (pkg/query).
//
// The centrepiece is the symptom history: one page of logs is fetched with
// the stored session token and grouped into sections by date, in the order
// the dates first appear in the response.
//
// Usage:
//
//	app, err := avyna.New(
//		avyna.WithBaseURL("https://api.example.com/api"),
//		avyna.WithLogger(logger),
//		avyna.WithNavigator(avyna.NavigatorFunc(func(route string) {
//			fmt.Println("please log in again")
//		})),
//	)
//
//	sections, err := app.History(0).Get(ctx)
package avyna
