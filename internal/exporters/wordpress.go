package exporters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kolo/xmlrpc"

	"github.com/patrickprogramme/snarksubs/internal/arginfo"
	"github.com/patrickprogramme/snarksubs/pkg/model"
)

// Wordpress publie les snarks dans un nouveau billet de blog via
// l'API XML-RPC metaWeblog. Le corps du billet est produit par un
// autre adaptateur du registre (post_body_exporter), avec ses propres
// options. Le support RPC doit être activé côté serveur.
//
// Cet adaptateur exige des identifiants : protéger le fichier de
// config par les permissions du système de fichiers.
type Wordpress struct {
	registry *Registry
}

func NewWordpress(r *Registry) *Wordpress {
	return &Wordpress{registry: r}
}

func (e *Wordpress) Name() string { return "wordpress" }

func (e *Wordpress) Describe() string {
	return "Writes snarks to a new Wordpress blog post."
}

func (e *Wordpress) Options() []arginfo.Arg {
	return []arginfo.Arg{
		{
			Name: "xmlrpc_url", Type: arginfo.URL, Required: true,
			Description: "Full url to \"http://.../xmlrpc.php\".",
		},
		{
			Name: "blog_id", Type: arginfo.Integer, Default: "0",
			Description: "Usually ignored by Wordpress servers.\nDefault is 0.",
		},
		{
			Name: "blog_user", Type: arginfo.String, Required: true,
			Description: "Wordpress username.",
		},
		{
			Name: "blog_pass", Type: arginfo.HiddenString, Required: true,
			Description: "Wordpress password.",
		},
		{
			Name: "post_title", Type: arginfo.String, Required: true,
			Description: "Title of the new post.",
		},
		{
			Name: "post_categories", Type: arginfo.String, Multiple: true,
			Description: "Comma-separated category names.\n(They must exist on the server)",
		},
		{
			Name: "post_keywords", Type: arginfo.String, Multiple: true,
			Description: "Comma-separated keyword tags.",
		},
		{
			Name: "post_publish", Type: arginfo.Integer,
			Default: "0", Choices: []string{"0", "1"},
			Description: "1=Publish. 0=Draft.\nDefault is 0.",
		},
		{
			Name: "post_body_exporter", Type: arginfo.String, Default: "transcripthtml",
			Description: "An html excerpt exporter.\nSpecify its own options as normal.\nDefault is \"transcripthtml\".",
		},
	}
}

// UsesDestFile : la destination est le blog ; la sortie de Write n'est
// qu'un compte-rendu.
func (e *Wordpress) UsesDestFile() bool { return false }

func (e *Wordpress) Write(ctx context.Context, w io.Writer, snarks []model.Snark, showTime model.Delta, opts arginfo.Options) error {
	ns := e.Name()

	if missing := arginfo.Missing(e.Options(), ns, opts); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, a := range missing {
			names[i] = a.Name
		}
		return fmt.Errorf("options requises absentes: %s: %w", strings.Join(names, ", "), ErrExporter)
	}

	blogID, err := opts.GetInt(ns, "blog_id", 0)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrExporter)
	}
	publish, err := opts.GetInt(ns, "post_publish", 0)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrExporter)
	}
	blogUser := opts.Get(ns, "blog_user", "")
	blogPass := opts.Get(ns, "blog_pass", "")
	categories := splitList(opts.Get(ns, "post_categories", ""))
	keywords := splitList(opts.Get(ns, "post_keywords", ""))

	body, err := e.renderBody(ctx, snarks, showTime, opts)
	if err != nil {
		return err
	}

	client, err := xmlrpc.NewClient(opts.Get(ns, "xmlrpc_url", ""), nil)
	if err != nil {
		return fmt.Errorf("client xmlrpc: %v: %w", err, ErrExporter)
	}
	defer client.Close()

	// sanité : un serveur qui ne sait pas faire 1+2 ne mérite pas le billet
	var sum int
	if err := client.Call("demo.addTwoNumbers", []interface{}{1, 2}, &sum); err != nil {
		return fmt.Errorf("appel de sanité: %v: %w", err, ErrExporter)
	}
	if sum != 3 {
		return fmt.Errorf("le serveur répond %d à 1+2: %w", sum, ErrExporter)
	}

	var available []string
	if err := client.Call("mt.supportedMethods", nil, &available); err != nil {
		return fmt.Errorf("mt.supportedMethods: %v: %w", err, ErrExporter)
	}
	for _, m := range []string{"metaWeblog.getCategories", "metaWeblog.newPost"} {
		if !containsString(available, m) {
			return fmt.Errorf("méthode RPC %s non supportée par le serveur: %w", m, ErrExporter)
		}
	}

	var serverCats []struct {
		CategoryName string `xmlrpc:"categoryName"`
	}
	if err := client.Call("metaWeblog.getCategories", []interface{}{blogID, blogUser, blogPass}, &serverCats); err != nil {
		return fmt.Errorf("metaWeblog.getCategories: %v: %w", err, ErrExporter)
	}
	catNames := make([]string, len(serverCats))
	for i, c := range serverCats {
		catNames[i] = c.CategoryName
	}
	for _, c := range categories {
		if !containsString(catNames, c) {
			return fmt.Errorf("la catégorie %q n'existe pas sur le serveur: %w", c, ErrExporter)
		}
	}

	content := map[string]interface{}{
		"title":       opts.Get(ns, "post_title", ""),
		"description": body,
		"categories":  categories,
		"mt_keywords": keywords,
	}

	var postID string
	if err := client.Call("metaWeblog.newPost", []interface{}{blogID, blogUser, blogPass, content, publish != 0}, &postID); err != nil {
		return fmt.Errorf("metaWeblog.newPost: %v: %w", err, ErrExporter)
	}

	fmt.Fprintf(w, "Created new post #%s.\n", postID)
	return nil
}

// renderBody produit le corps du billet via l'adaptateur délégué.
func (e *Wordpress) renderBody(ctx context.Context, snarks []model.Snark, showTime model.Delta, opts arginfo.Options) (string, error) {
	name := opts.Get(e.Name(), "post_body_exporter", "transcripthtml")
	if name == e.Name() {
		return "", fmt.Errorf("post_body_exporter ne peut pas être %q: %w", name, ErrExporter)
	}

	body, err := e.registry.Get(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := body.Write(ctx, &buf, snarks, showTime, opts); err != nil {
		return "", err
	}
	text := strings.ReplaceAll(buf.String(), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return "", fmt.Errorf("l'adaptateur du corps, %s, n'a rien produit: %w", name, ErrExporter)
	}
	return text, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
