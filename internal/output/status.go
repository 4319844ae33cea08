/*
PURPOSE:
  Provider-grouped view of the gateway's /api/models listing for the
  'status' command.

REQUIREMENTS:
  User-specified:
  - Per model: connected mark, name, id, availability, context length.

  Implementation-discovered:
  - Providers appear in order of first appearance in the listing.
  - Context lengths are printed with thousands separators.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (status)
  - Uses: internal/catalog (ProviderLabel)
*/

package output

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daryltucker/gateway-probe/internal/catalog"
	"github.com/daryltucker/gateway-probe/internal/model"
)

// GroupByProvider groups models by provider tag, providers in order of
// first appearance. Models without a provider go under "unknown".
func GroupByProvider(models []model.GatewayModel) ([]string, map[string][]model.GatewayModel) {
	var order []string
	groups := make(map[string][]model.GatewayModel)
	for _, m := range models {
		p := m.Provider
		if p == "" {
			p = "unknown"
		}
		if _, ok := groups[p]; !ok {
			order = append(order, p)
		}
		groups[p] = append(groups[p], m)
	}
	return order, groups
}

// ModelStatus prints the provider-grouped view of a gateway model listing.
func (r *Reporter) ModelStatus(list *model.ModelListing, at time.Time) {
	num := message.NewPrinter(language.English)

	r.printf("🔍 AI MODEL CONNECTION STATUS\n")
	r.printf("%s\n", strings.Repeat("=", 50))
	r.printf("📊 Total Models: %d\n", list.TotalModels)
	r.printf("✅ Connected Models: %d\n", list.ConnectedModels)
	r.printf("🕒 Test Time: %s\n", at.Format("2006-01-02 15:04:05"))
	if list.Error != "" {
		r.printf("⚠️  Gateway note: %s\n", list.Error)
	}
	r.printf("\n")

	order, groups := GroupByProvider(list.Models)
	for _, provider := range order {
		r.printf("%s %s MODELS:\n", catalog.ProviderLabel(provider), strings.ToUpper(provider))
		r.printf("%s\n", strings.Repeat("-", 30))

		for _, m := range groups[provider] {
			mark := "❌"
			if m.Connected {
				mark = "✅"
			}
			available := "Unknown"
			if m.Available != nil {
				available = fmt.Sprint(m.Available)
			}

			r.printf("  %s %s\n", mark, m.DisplayName())
			r.printf("     ID: %s\n", m.ID)
			r.printf("     Status: %s\n", available)
			r.printf("     Context: %s tokens\n", num.Sprintf("%d", m.ContextLength))
			r.printf("\n")
		}
		r.printf("\n")
	}
}

// FirstConnected returns the first connected model, if any.
func FirstConnected(list *model.ModelListing) (model.GatewayModel, bool) {
	for _, m := range list.Models {
		if m.Connected {
			return m, true
		}
	}
	return model.GatewayModel{}, false
}

// SmokeTest prints the outcome of the single-model check run by `status`.
func (r *Reporter) SmokeTest(m model.GatewayModel, code int, body []byte, err error) {
	r.printf("🧪 TESTING FIRST WORKING MODEL:\n")
	r.printf("%s\n", strings.Repeat("-", 30))
	r.printf("Testing: %s (%s)\n", m.DisplayName(), m.ID)

	switch {
	case err != nil:
		r.printf("❌ Test failed: %v\n", err)
	case code != 200:
		r.printf("❌ Test failed: %d\n", code)
	default:
		r.printf("✅ Test successful!\n")
		r.printf("Response preview: %s\n", Truncate(string(body), 100))
	}
}
