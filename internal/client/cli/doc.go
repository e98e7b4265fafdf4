// Package cli provides the interactive jobtracker command-line client.
//
// It wires configuration, the local session database, the authenticated API
// client and the tracker services into a REPL. Typical flow: restore the
// stored session (or prompt for credentials), start a background
// connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Verify email / Login / Logout
//   - Job applications: list, filter, show, add, edit, change status, delete
//   - Vacation budget: transactions, goals, monthly plan
//   - Savings jar: energy drinks, withdrawals, transfers to the vacation budget
//
// When the API client gives up on renewing the session it redirects the
// navigator to the login screen; the REPL picks that up before the next
// prompt and drops the user. The REPL is started via App.Run(ctx), which
// blocks until the user exits.
package cli
