// Package credentials persists the Vercel access token and the selected team.
//
// Tokens are stored in a single JSON file under the vercelctl config
// directory:
//
//	~/.config/vercelctl/credentials.json
//
// The file is written with 0600 permissions inside a 0700 directory. Token
// values are never logged; audit entries only record that a credential
// changed.
//
// A Watcher reports changes made to the file by other processes, such as a
// second vercelctl logging out, so long-running views can refresh.
package credentials
