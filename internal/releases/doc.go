// Package releases implements the new-releases browsing feed: render the
// listing immediately with whatever sparse data it carries, then backfill
// titles, thumbnails, and durations card by card as detail responses
// arrive. Enrichment is fire-and-forget; the card registry decides whether
// a late response still has somewhere to land.
package releases
