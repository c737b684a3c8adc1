// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// A search session flows NewsService -> PreferenceService (history) ->
// IndexService (chunk, embed, store), and SummaryService reads the results
// back through its brief (map-reduce) or detailed (stuff) strategy.
package services
