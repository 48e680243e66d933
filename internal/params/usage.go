package params

// Usage is the help text printed for -h/--help.
const Usage = `devenv-ctl resolves and launches the Docker-based development environment.

Usage:
  devenv-ctl [flags] <action>

Actions:
  up      Create and start the dev environment stack
  down    Stop and remove the dev environment stack
  stop    Stop the dev environment stack

Flags:
  --os <version>          OpenSearch version
  --osd <version>         OpenSearch Dashboards version
  --plugins-root <path>   Base directory for repository auto-discovery
                          (aliases: --plugins-path, --plugins)
  --repo <name=path>      Mount a repository from an explicit host path
  --repo <name>           Mount a repository from the sibling checkout directory
  --server <version>      Use a real server stack at the given version
  --server-local <tag>    Use a locally built server image with the given tag
  --saml                  Enable the SAML profile
  --agents-up <pkg>       Enroll agents: rpm, deb, or without
  --base [path]           Serve the dashboard from a source checkout; the path
                          is auto-detected from the sibling directory if absent
  --indexer-local [tag]   Run the indexer from a package build
      --dry-run           Print the compose command instead of running it
  -v, --verbose           Enable verbose output
      --json              Output logs in JSON format
  -h, --help              Show this help

Environment:
  WZD_HOME                Host root of the current checkout
  WZD_SIBLINGS            Host directory holding peer checkouts
  WZD_PACKAGE_MANIFEST    Package manifest path (default: WZD_HOME/package.json)
  WZD_CONFIG              Defaults file location (TOML)
`
