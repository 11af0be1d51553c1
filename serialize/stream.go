package serialize

import (
	"io"

	"golang.org/x/net/html"
)

// Stream tokenizes the HTML read from r and replays it on h. Self-closing
// tags become a start and an end event, text is entity-decoded, and
// doctypes are skipped. Stream does no filtering: every tag and attribute
// in the input reaches h.
func Stream(r io.Reader, h Handler) error {
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return err
			}
			return nil
		case html.StartTagToken:
			tok := z.Token()
			if err := h.StartElement(tok.Data, tok.Attr); err != nil {
				return err
			}
		case html.SelfClosingTagToken:
			tok := z.Token()
			if err := h.StartElement(tok.Data, tok.Attr); err != nil {
				return err
			}
			if err := h.EndElement(tok.Data); err != nil {
				return err
			}
		case html.EndTagToken:
			tok := z.Token()
			if err := h.EndElement(tok.Data); err != nil {
				return err
			}
		case html.TextToken:
			if err := h.Text(z.Token().Data); err != nil {
				return err
			}
		case html.CommentToken:
			if err := h.Comment(z.Token().Data); err != nil {
				return err
			}
		case html.DoctypeToken:
		}
	}
}
