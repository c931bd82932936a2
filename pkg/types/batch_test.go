package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBatch() *ClientBatch {
	return &ClientBatch{
		Header: ClientHeader{Year: 2024, TypeCode: "I", ClientID: "SMITH01"},
		Forms: []*Form{
			{Code: "180", Label: "W-2"},
			{Code: "181", Label: "Interest"},
			{Code: "180", Label: "W-2"},
		},
	}
}

func TestClientBatchFormReturnsFirst(t *testing.T) {
	b := testBatch()

	f := b.Form("180")
	assert.NotNil(t, f)
	assert.Same(t, b.Forms[0], f)
	assert.Nil(t, b.Form("999"))
}

func TestClientBatchFormsByCode(t *testing.T) {
	b := testBatch()

	assert.Len(t, b.FormsByCode("180"), 2)
	assert.Len(t, b.FormsByCode("181"), 1)
	assert.Empty(t, b.FormsByCode("999"))
}

func TestClientBatchFormCodesFirstSeenOrder(t *testing.T) {
	b := testBatch()
	assert.Equal(t, []string{"180", "181"}, b.FormCodes())
}

func TestClientBatchEntriesAcrossRepeatedForms(t *testing.T) {
	b := testBatch()
	b.Forms[0].Sections = []*Section{{Index: 1, Entries: []*Entry{{Ordinal: 1, Fields: FieldSet{}}}}}
	b.Forms[2].Sections = []*Section{{Index: 1, Entries: []*Entry{{Ordinal: 1, Fields: FieldSet{}}, {Ordinal: 2, Fields: FieldSet{}}}}}

	assert.Len(t, b.Entries("180"), 3)
}

func TestClientBatchWarnStampsClientID(t *testing.T) {
	b := testBatch()

	b.Warn(Warning{Code: WarnDuplicateIndex, Form: "881"})
	b.Warn(Warning{Code: WarnListSumMismatch, Client: "OTHER"})

	assert.Equal(t, "SMITH01", b.Warnings[0].Client)
	assert.Equal(t, "OTHER", b.Warnings[1].Client, "an existing client stamp is kept")
}
