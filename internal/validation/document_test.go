package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCollection(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		errMsg     string
		wantErr    bool
	}{
		{name: "valid - currencies", collection: "currencies"},
		{name: "valid - with underscore and digits", collection: "daily_quests2"},
		{name: "empty", collection: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "uppercase", collection: "Currencies", wantErr: true, errMsg: "lowercase letters"},
		{name: "starts with digit", collection: "1currencies", wantErr: true, errMsg: "lowercase letters"},
		{name: "path separator", collection: "users/currencies", wantErr: true, errMsg: "lowercase letters"},
		{name: "too long", collection: strings.Repeat("a", MaxCollectionLen+1), wantErr: true, errMsg: "must not exceed"},
		{name: "max length", collection: strings.Repeat("a", MaxCollectionLen)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCollection(tt.collection)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateDocumentID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		errMsg  string
		wantErr bool
	}{
		{name: "valid - simple", id: "gold"},
		{name: "valid - uuid", id: "6f1c3a5e-0b8e-4f7a-9d2c-1a2b3c4d5e6f"},
		{name: "valid - dotted", id: "axe.v2"},
		{name: "empty", id: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "dot", id: ".", wantErr: true, errMsg: "reserved"},
		{name: "dot dot", id: "..", wantErr: true, errMsg: "reserved"},
		{name: "slash", id: "a/b", wantErr: true, errMsg: "can only contain"},
		{name: "space", id: "big axe", wantErr: true, errMsg: "can only contain"},
		{name: "too long", id: strings.Repeat("x", MaxDocumentIDLen+1), wantErr: true, errMsg: "must not exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidatePayloadSize(t *testing.T) {
	assert.NoError(t, ValidatePayloadSize(10))
	assert.NoError(t, ValidatePayloadSize(MaxPayloadSize))
	assert.Error(t, ValidatePayloadSize(0))
	assert.Error(t, ValidatePayloadSize(MaxPayloadSize+1))
}
