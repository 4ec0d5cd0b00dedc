package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "name").
		From("teams").
		Where(Eq("tournament_public_id", "t1"), IsNull("deleted_at")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, name FROM teams WHERE tournament_public_id = $1 AND deleted_at IS NULL ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "t1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		PublicID string `db:"public_id"`
		Name     string `db:"name"`
		skipped  string
		Ignored  string `db:"-"`
	}

	query, args, err := InsertModels("teams", []row{
		{PublicID: "a", Name: "LIONS"},
		{PublicID: "b", Name: "TIGERS"},
	})
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (public_id, name) VALUES ($1, $2), ($3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "b" || args[3] != "TIGERS" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[row]("teams", nil); err == nil {
		t.Fatalf("expected error for empty insert")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("fixtures").
		Set("home_team_public_id", "team-1").
		SetRaw("home_placeholder", "NULL").
		SetRaw("updated_at", "NOW()").
		Where(Eq("public_id", "f1"), IsNull("home_team_public_id")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE fixtures SET home_team_public_id = $1, home_placeholder = NULL, updated_at = NOW() WHERE public_id = $2 AND home_team_public_id IS NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "team-1" || args[1] != "f1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("tournaments").Where(Eq("public_id", "t1")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM tournaments WHERE public_id = $1" || len(args) != 1 {
		t.Fatalf("unexpected delete: %s %+v", query, args)
	}

	if _, _, err := DeleteFrom("tournaments").ToSQL(); err == nil {
		t.Fatalf("expected unconditional delete to be rejected")
	}
}
