package exporters

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

func TestDefaultRegistryNames(t *testing.T) {
	r := DefaultRegistry()

	want := []string{"archive", "subrip", "tabbedtext", "transcripthtml", "wordpress"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, attendu %v", got, want)
	}

	for _, name := range want {
		e, err := r.Get(name)
		if err != nil {
			t.Errorf("Get(%q): %v", name, err)
			continue
		}
		if e.Name() != name {
			t.Errorf("Get(%q).Name() = %q", name, e.Name())
		}
	}
}

func TestRegistryUnknownName(t *testing.T) {
	_, err := DefaultRegistry().Get("nonexistent")
	if !errors.Is(err, ErrExporter) {
		t.Fatalf("err = %v, attendu ErrExporter", err)
	}
}

func TestWordpressRefusals(t *testing.T) {
	r := DefaultRegistry()
	wp, err := r.Get("wordpress")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	snarks := []model.Snark{{User: "@a", Msg: "m"}}

	t.Run("options requises absentes", func(t *testing.T) {
		err := wp.Write(context.Background(), nil, snarks, 0, arginfo.Options{})
		if !errors.Is(err, ErrExporter) {
			t.Fatalf("err = %v, attendu ErrExporter", err)
		}
	})

	t.Run("corps delegue a soi-meme", func(t *testing.T) {
		opts := arginfo.Options{}
		opts.Set("wordpress", "xmlrpc_url", "http://example.com/xmlrpc.php")
		opts.Set("wordpress", "blog_user", "u")
		opts.Set("wordpress", "blog_pass", "p")
		opts.Set("wordpress", "post_title", "t")
		opts.Set("wordpress", "post_body_exporter", "wordpress")

		err := wp.Write(context.Background(), nil, snarks, 0, opts)
		if !errors.Is(err, ErrExporter) {
			t.Fatalf("err = %v, attendu ErrExporter", err)
		}
	})
}
