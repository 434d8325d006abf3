// Package commands defines the bridgectl CLI, a terminal client for the
// quoting backend.
//
// Commands
//
//   - chains   List the chains the backend supports
//   - tokens   Search the tokens of one chain
//   - quote    Compare bridge routes for one transfer
//
// The root command loads configuration and builds the quote client, token
// cache and bridge service before any subcommand runs.
package commands
