package checklist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taxport/internal/batch"
	"github.com/mesh-intelligence/taxport/internal/mapping"
	"github.com/mesh-intelligence/taxport/internal/scan"
)

// exportSample is a small but complete export file: one client with a
// W-2, two interest payers (one memo-only), and a consolidated broker
// statement whose summary links to the header by section index.
var exportSample = strings.Join([]string{
	"**BEGIN,2024:I:SMITH01:001,123-45-6789,NYC,A,OFF",
	`\@180 \ W-2`,
	`.41 ACME CORP`,
	`.54 55,000.00`,
	`\@181 \ Interest`,
	`\&1`,
	`.30 T`,
	`.40 FIRST BANK`,
	`.71 512.33`,
	`\&2`,
	`.30 S`,
	`.40 GONE BANK`,
	`.71 0.00`,
	`.71M 1,250.00`,
	`\@881 \ Broker Header`,
	`\:1`,
	`.34 FIDELITY`,
	`.46 X111`,
	`\@882 \ Broker Summary`,
	`\:1`,
	`.57 412.88`,
	"**END",
}, "\n")

func TestPipelineEndToEnd(t *testing.T) {
	sc := scan.FromString(exportSample)
	batches := batch.New(sc).All()
	require.Len(t, batches, 1)

	b := batches[0]
	assert.False(t, b.Incomplete)
	assert.Empty(t, b.Warnings)
	assert.Equal(t, []string{"180", "181", "881", "882"}, b.FormCodes())

	cl := NewGenerator(mapping.Default()).Generate(b, 2025)
	require.Len(t, cl.Items, 4)

	byPayer := make(map[string]Item)
	for _, item := range cl.Items {
		byPayer[item.Payer] = item
	}

	w2 := byPayer["ACME CORP"]
	assert.Equal(t, "$55,000.00", w2.PriorAmount)
	assert.Equal(t, "Taxpayer", w2.Recipient)

	first := byPayer["FIRST BANK"]
	assert.Equal(t, "$512.33", first.PriorAmount)
	assert.Empty(t, first.Notes)

	gone := byPayer["GONE BANK"]
	assert.Equal(t, "$1,250.00", gone.PriorAmount, "memo value carries the prior-year amount")
	assert.Equal(t, "Spouse", gone.Recipient)
	assert.Equal(t, "reported last year, not seen yet", gone.Notes)

	broker := byPayer["FIDELITY"]
	assert.Equal(t, "$412.88", broker.PriorAmount, "summary amount joined to the broker header by index")
}

func TestPipelineReparseIsIdentical(t *testing.T) {
	sc := scan.FromString(exportSample)
	first := batch.New(sc).All()

	sc.Reset()
	second := batch.New(sc).All()

	assert.Equal(t, first, second)
}
