package export

import (
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// mdConverter is goroutine-safe and shared by all callers.
var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(
			table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
		),
	),
)

// Markdown renders rawHTML as Markdown. Relative links and image sources are
// resolved against pageURL.
func Markdown(rawHTML, pageURL string) (string, error) {
	md, err := mdConverter.ConvertString(rawHTML, converter.WithDomain(pageURL))
	if err != nil {
		return "", fmt.Errorf("export: convert to markdown: %w", err)
	}
	return md, nil
}
