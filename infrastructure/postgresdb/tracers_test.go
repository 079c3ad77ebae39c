package postgresdb

import "testing"

func TestCompactSQL(t *testing.T) {
	tests := map[string]string{
		"SELECT 1": "SELECT 1",
		`
		INSERT INTO tasks (
			position,
			title
		) VALUES ($1, $2)
		`: "INSERT INTO tasks(position, title)VALUES($1, $2)",
		"\tDELETE   FROM\ttasks\n": "DELETE FROM tasks",
	}
	for in, want := range tests {
		if got := compactSQL(in); got != want {
			t.Errorf("compactSQL(%q) = %q, want %q", in, got, want)
		}
	}
}
