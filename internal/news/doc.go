// Package news aggregates RSS and Atom feeds and translates them between the
// platform languages.
//
// One ingestion run fetches every configured feed, fingerprints each item,
// drops what is already stored, translates the rest and saves them. A failing
// feed or translation is logged and counted; the run goes on with the
// remaining work.
package news
