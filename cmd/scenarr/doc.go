// Package main hosts the scenarr CLI entrypoint and command graph.
//
// The Cobra command tree covers the API server (serve), offline and
// catalog-backed matching (match), catalog maintenance (site, scene), duration
// probing (probe), environment checks (doctor), log viewing (logs), and
// configuration scaffolding (config). Configuration resolution, logger
// construction, and store opening live in commandContext so subcommands only
// describe behavior.
package main
