package gate

import (
	"testing"
)

func FuzzEvaluate(f *testing.F) {
	g := NewDefault()

	seeds := []struct {
		path    string
		content string
	}{
		{"Dockerfile", "CMD npm start"},
		{"Dockerfile", "CMD bun start"},
		{"docker-compose.yml", "command: yarn dev"},
		{".github/workflows/ci.yml", "run: npx tsc"},
		{"app.js", "console.log('npm')"},
		{"Dockerfile", "COPY .pnpmrc /app/"},
		{"", ""},
		{"Dockerfile.prod", "RUN pnpm install --frozen-lockfile"},
	}
	for _, s := range seeds {
		f.Add(s.path, s.content)
	}

	f.Fuzz(func(t *testing.T, path, content string) {
		// Must not panic and must be deterministic on any input.
		first := g.Evaluate(path, content)
		second := g.Evaluate(path, content)
		if first != second {
			t.Fatalf("non-deterministic result for (%q, %q)", path, content)
		}
	})
}
