package parsers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
)

func searchServer(t *testing.T) *httptest.Server {
	t.Helper()

	page1 := `{
		"results": [
			{"from_user": "bob", "text": "premier plan", "created_at": "Sat, 21 Apr 2012 20:30:20 +0000", "id": 2},
			{"from_user": "alice", "text": "@host le film commence", "created_at": "Sat, 21 Apr 2012 20:30:05 +0000", "id": 1}
		],
		"next_page": "?page=2"
	}`
	// la page 2 répète un résultat de la page 1 : l'API fait ça
	page2 := `{
		"results": [
			{"from_user": "carol", "text": "jamais vu", "created_at": "Sat, 21 Apr 2012 20:30:40 +0000", "id": 3},
			{"from_user": "bob", "text": "premier plan", "created_at": "Sat, 21 Apr 2012 20:30:20 +0000", "id": 2}
		]
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, page2)
			return
		}
		fmt.Fprint(w, page1)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func searchOpts(srv *httptest.Server) arginfo.Options {
	opts := arginfo.Options{}
	opts.Set("searchapi", "reply_name", "host")
	opts.Set("searchapi", "search_url", srv.URL)
	return opts
}

func TestSearchAPIFetch(t *testing.T) {
	srv := searchServer(t)

	snarks, err := NewSearchAPI().Fetch(context.Background(), "", "", searchOpts(srv))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	// pagination suivie, doublons éliminés, tri par date
	if len(snarks) != 3 {
		t.Fatalf("len(snarks) = %d, attendu 3: %v", len(snarks), snarks)
	}
	if snarks[0].User != "@alice" || snarks[1].User != "@bob" || snarks[2].User != "@carol" {
		t.Errorf("ordre inattendu: %v", snarks)
	}

	// le @reply vers le compte est gommé
	if got, want := snarks[0].Msg, "le film commence"; got != want {
		t.Errorf("Msg[0] = %q, attendu %q", got, want)
	}

	want := time.Date(2012, 4, 21, 20, 30, 5, 0, time.UTC)
	if !snarks[0].Date.Equal(want) {
		t.Errorf("Date[0] = %v, attendu %v", snarks[0].Date, want)
	}
	if snarks[1].MsgURL != "http://twitter.com/#!/bob/status/2" {
		t.Errorf("MsgURL[1] = %q", snarks[1].MsgURL)
	}
}

func TestSearchAPIFirstMsg(t *testing.T) {
	srv := searchServer(t)

	snarks, err := NewSearchAPI().Fetch(context.Background(), "", "premier plan", searchOpts(srv))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(snarks) != 2 {
		t.Fatalf("len(snarks) = %d, attendu 2: %v", len(snarks), snarks)
	}
	if snarks[0].User != "@bob" {
		t.Errorf("premier snark = %v, attendu celui de @bob", snarks[0])
	}
}

func TestSearchAPIFirstMsgAbsent(t *testing.T) {
	srv := searchServer(t)

	snarks, err := NewSearchAPI().Fetch(context.Background(), "", "introuvable", searchOpts(srv))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(snarks) != 0 {
		t.Errorf("len(snarks) = %d, attendu 0", len(snarks))
	}
}

func TestSearchAPIRequiresReplyName(t *testing.T) {
	_, err := NewSearchAPI().Fetch(context.Background(), "", "", arginfo.Options{})
	if !errors.Is(err, ErrParser) {
		t.Fatalf("err = %v, attendu ErrParser", err)
	}
}
