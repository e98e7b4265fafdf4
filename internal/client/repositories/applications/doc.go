// Package applications is the local read cache of job applications.
//
// The CLI keeps the last list it fetched from the API so the applications
// screen still has something to show when the API is unreachable. Each row
// keeps the full JSON of the application (status history included) next to
// the few columns used for filtering and ordering.
//
// The cache is never written back to the API; it is replaced wholesale on
// every successful list and patched on single-item reads and writes.
//
// Typical usage
//
//	repo := applications.NewSQLiteRepository(db)
//	_ = repo.Upsert(ctx, app, time.Now())
//	list, _ := repo.List(ctx, models.StatusInterview)
//	at, _ := repo.SyncedAt(ctx)
package applications
