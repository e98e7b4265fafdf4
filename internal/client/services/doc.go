// Package services contains the application services of the jobtracker CLI:
// typed wrappers over the tracker API. Every call goes through the
// authenticated client, so an expired access token is renewed transparently.
package services
