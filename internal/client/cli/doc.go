// Package cli provides the interactive examiner command-line client.
//
// It wires configuration, the credential store, the authenticated API client
// and the exam services into a REPL. The API client refreshes expired
// tokens on its own; when a session cannot be recovered it calls back into
// the App, which prints a notice and returns to the logged-out prompt.
//
// Key features:
//   - Login / Logout / Me / Status
//   - Programs, students, procedures and grades listings
//   - Step scoring and score reconciliation
//   - Grade exports to a directory or an S3 bucket
//   - A dashboard that loads several endpoints concurrently
//   - Admin listings and active-flag toggles
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
