// Package vercel is a small client for the Vercel REST API.
//
// It builds the URLs for the four endpoints vercelctl uses, exchanges an
// OAuth authorization code for an access token, and lists deployments and
// teams with a bearer token. URL builders are pure functions of the base URL.
package vercel
