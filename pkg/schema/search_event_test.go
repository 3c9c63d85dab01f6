package schema

import (
	"context"
	"testing"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/sr"
)

func TestSearchEventV1(t *testing.T) {
	var s avro.Schema
	require.NotPanics(t, func() {
		s = SearchEventV1Avro()
	})

	t.Run("WithUser", func(t *testing.T) {
		userID := int64(3)
		in := SearchEventV1{
			UserID:  &userID,
			Query:   "Table",
			Results: 4,
			At:      time.UnixMilli(1700000000000).UTC(),
		}

		data, err := avro.Marshal(s, in)
		require.NoError(t, err)

		var out SearchEventV1
		require.NoError(t, avro.Unmarshal(s, data, &out))
		require.NotNil(t, out.UserID)
		assert.Equal(t, userID, *out.UserID)
		assert.Equal(t, in.Query, out.Query)
		assert.Equal(t, in.Results, out.Results)
		assert.True(t, in.At.Equal(out.At))
	})

	t.Run("AllUsers", func(t *testing.T) {
		in := SearchEventV1{Query: "", At: time.UnixMilli(0).UTC()}

		data, err := avro.Marshal(s, in)
		require.NoError(t, err)

		var out SearchEventV1
		require.NoError(t, avro.Unmarshal(s, data, &out))
		assert.Nil(t, out.UserID)
		assert.Empty(t, out.Query)
	})
}

type mockRegistry struct {
	mock.Mock
}

func (m *mockRegistry) CreateSchema(
	ctx context.Context, subject string, s sr.Schema,
) (sr.SubjectSchema, error) {
	args := m.Called(ctx, subject, s)
	return args.Get(0).(sr.SubjectSchema), args.Error(1)
}

func TestSchemaCreater(t *testing.T) {
	reg := new(mockRegistry)
	reg.On("CreateSchema", t.Context(), "events-value", sr.Schema{
		Type:   sr.TypeAvro,
		Schema: SearchEventSchemaTextV1,
	}).Return(sr.SubjectSchema{ID: 11}, nil)

	id, err := SchemaCreater{reg}.DetermineID(
		t.Context(), "events-value", SearchEventSchemaTextV1,
	)
	require.NoError(t, err)
	assert.Equal(t, 11, id)
	reg.AssertExpectations(t)
}
