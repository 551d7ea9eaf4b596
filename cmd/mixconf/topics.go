package mixconf

import (
	"embed"

	"github.com/arthur-debert/mixconf/pkg/cobrax/topics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var helpTopics embed.FS

func installTopics(rootCmd *cobra.Command) {
	manager, err := topics.Load(helpTopics, "topics", topics.Options{
		Renderer: topics.NewGlamourRenderer(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	manager.Install(rootCmd)
}
