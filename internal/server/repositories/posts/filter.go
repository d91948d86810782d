package posts

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// buildFilter renders the WHERE clause for q (empty when nothing filters)
// together with its positional arguments, numbered from $1.
func buildFilter(q models.PostQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Status != nil {
		conds = append(conds, "p.status = "+next(string(*q.Status)))
	}
	if q.AuthorID != "" {
		conds = append(conds, "p.author_id = "+next(q.AuthorID))
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		ph := next("%" + escapeLike(s) + "%")
		conds = append(conds, fmt.Sprintf(`(p.title ILIKE %[1]s ESCAPE '\' OR p.content ILIKE %[1]s ESCAPE '\')`, ph))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
