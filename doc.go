// Package ynabmcp implements a Model Context Protocol (MCP) server for
// YNAB-style budget analysis. It speaks JSON-RPC 2.0 over a Content-Length
// framed stdio stream and exposes a fixed catalog of five analysis tools
// over in-memory or YNAB API data.
//
// # Architecture
//
// The repository is organized as small single-concern packages:
//
//	pkg/transport/ - Content-Length framing over an io.Reader/io.Writer pair
//	pkg/protocol/  - JSON-RPC 2.0 envelopes and MCP result types
//	pkg/domain/    - financial entities and the transaction query engine
//	pkg/ynab/      - YNAB API client, TTL response cache, response mapper
//	pkg/tools/     - the tool registry, data sources and the five handlers
//	pkg/server/    - the dispatcher and the single-session loop
//	pkg/errors/    - closed error taxonomy with JSON-RPC code mapping
//	pkg/logging/   - structured key=value logging to stderr
//	cmd/ynab-mcp/  - the server binary
//
// # Wire Format
//
// Each message is one ASCII header line, a blank line, then the body:
//
//	Content-Length: <N>\r\n
//	\r\n
//	<N bytes of UTF-8 JSON>
//
// N is the byte length of the body, not the character count. Stdout carries
// the protocol stream, so all logging goes to stderr.
//
// # Methods and Tools
//
// The dispatcher handles initialize, ping, tools/list and tools/call. The
// tool catalog is fixed: analyze_category_spending, get_budget_overview,
// search_transactions, analyze_spending_trends and budget_health_check.
// Amounts are milliunits throughout (1/1000 of the major currency unit;
// negative is spending, positive is income).
//
// # Running
//
//	YNAB_API_TOKEN=... ynab-mcp
//	ynab-mcp --local   # built-in demo data, no token needed
//
// Configuration comes from the environment (optionally via a .env file):
// YNAB_API_TOKEN, YNAB_BUDGET_ID, YNAB_CACHE_TTL and LOG_LEVEL.
package ynabmcp
