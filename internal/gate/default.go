package gate

// DefaultConfig returns the built-in ruleset: Dockerfiles, docker-compose
// files, and CI workflow files must not reference the npm-family package
// managers; the project standard is bun.
func DefaultConfig() *Config {
	return &Config{
		Mandated: "bun",
		Tokens:   []string{"npm", "yarn", "npx", "pnpm"},
		Rules: []Rule{
			{
				ID:           "dockerfile",
				PathContains: []string{"Dockerfile"},
			},
			{
				ID:           "docker-compose",
				PathContains: []string{"docker-compose"},
				PathSuffix:   ".yml",
			},
			{
				ID:           "ci-workflow",
				PathContains: []string{".github/workflows"},
				PathSuffix:   ".yml",
			},
		},
	}
}

// DefaultConfigYAML returns a commented YAML string for writegate init.
func DefaultConfigYAML() string {
	return `# writegate ruleset
# Generated by: writegate init
#
# A write is blocked when its path matches a rule below AND its content
# contains one of the forbidden tokens as a whole word. Paths matching no
# rule are always allowed; content is never inspected for them.

# The tool the project standardizes on. Blocked writes are told to use it.
mandated: bun

# Forbidden tokens, matched as whole words (case-sensitive).
# ".pnpmrc" does not match "pnpm"; "RUN npm ci" matches "npm".
tokens: [npm, yarn, npx, pnpm]

# Path rules. path_contains is a case-sensitive substring match anywhere in
# the path (so "Dockerfile" also catches Dockerfile.prod); path_suffix, if
# set, must also match. Per-rule tokens/mandated override the top level.
rules:
  - id: dockerfile
    path_contains: ["Dockerfile"]
  - id: docker-compose
    path_contains: ["docker-compose"]
    path_suffix: ".yml"
  - id: ci-workflow
    path_contains: [".github/workflows"]
    path_suffix: ".yml"
`
}
