// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishdiary/pkg/convert"
)

/*
TestOptionalInt treats blanks as absent and rejects garbage.
*/
func TestOptionalInt(t *testing.T) {
	v, err := convert.OptionalInt(" 45 ")
	require.NoError(t, err)
	assert.Equal(t, 45, *v)

	v, err = convert.OptionalInt("")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = convert.OptionalInt("forty")
	assert.Error(t, err)
}

/*
TestOptionalBool accepts the strconv spellings.
*/
func TestOptionalBool(t *testing.T) {
	v, err := convert.OptionalBool("false")
	require.NoError(t, err)
	assert.False(t, *v)

	v, err = convert.OptionalBool("1")
	require.NoError(t, err)
	assert.True(t, *v)

	v, err = convert.OptionalBool("  ")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = convert.OptionalBool("yes")
	assert.Error(t, err)
}
