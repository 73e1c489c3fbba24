package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTempPair(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectedMin float64
		expectedMax float64
		expectedErr error
	}{
		{
			name:        "valid pair",
			input:       "18 25",
			expectedMin: 18,
			expectedMax: 25,
		},
		{
			name:        "negative min",
			input:       "-20 5",
			expectedMin: -20,
			expectedMax: 5,
		},
		{
			name:        "comma decimals",
			input:       "17,5 24,5",
			expectedMin: 17.5,
			expectedMax: 24.5,
		},
		{
			name:        "surrounding whitespace",
			input:       "  18   25  ",
			expectedMin: 18,
			expectedMax: 25,
		},
		{
			name:        "single value",
			input:       "18",
			expectedErr: ErrPairFormat,
		},
		{
			name:        "three values",
			input:       "18 25 30",
			expectedErr: ErrPairFormat,
		},
		{
			name:        "not numbers",
			input:       "abc def",
			expectedErr: ErrPairNotNumbers,
		},
		{
			name:        "min equals max",
			input:       "20 20",
			expectedErr: ErrPairOrder,
		},
		{
			name:        "min above max",
			input:       "25 18",
			expectedErr: ErrPairOrder,
		},
		{
			name:        "min below range",
			input:       "-60 20",
			expectedErr: ErrPairRange,
		},
		{
			name:        "max above range",
			input:       "18 150",
			expectedErr: ErrPairRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, err := ParseTempPair(tt.input)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedMin, min)
			assert.Equal(t, tt.expectedMax, max)
		})
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "cyrillic three words",
			input:    "Пушкин Александр Сергеевич",
			expected: true,
		},
		{
			name:     "hyphenated surname",
			input:    "Салтыков-Щедрин Михаил Евграфович",
			expected: true,
		},
		{
			name:     "four words",
			input:    "Толкин Джон Рональд Руэл",
			expected: true,
		},
		{
			name:     "five words",
			input:    "Макиавелли Никколо Ди Бернардо Деи",
			expected: true,
		},
		{
			name:     "two words",
			input:    "Александр Пушкин",
			expected: false,
		},
		{
			name:     "six words",
			input:    "Один Два Три Четыре Пять Шесть",
			expected: false,
		},
		{
			name:     "lowercase word",
			input:    "Пушкин александр Сергеевич",
			expected: false,
		},
		{
			name:     "digits in word",
			input:    "Пушкин Алекс4ндр Сергеевич",
			expected: false,
		},
		{
			name:     "single letter word",
			input:    "Пушкин А Сергеевич",
			expected: false,
		},
		{
			name:     "empty",
			input:    "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FullName(tt.input))
		})
	}
}

func TestPosition(t *testing.T) {
	assert.True(t, Position("Директор"))
	assert.True(t, Position("IT"))
	assert.False(t, Position("Д"))
	assert.False(t, Position("  "))
}

func TestDeviceID(t *testing.T) {
	assert.True(t, DeviceID("D7"))
	assert.True(t, DeviceID("sensor_01-a"))
	assert.False(t, DeviceID(""))
	assert.False(t, DeviceID("bad id"))
	assert.False(t, DeviceID("датчик"))
}

func TestGroupName(t *testing.T) {
	assert.True(t, GroupName("G1"))
	assert.True(t, GroupName("Cold Storage 2"))
	assert.False(t, GroupName(""))
	assert.False(t, GroupName("group<script>"))
}

func TestUserInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "plain text",
			input:    "18 25",
			expected: true,
		},
		{
			name:     "empty",
			input:    "",
			expected: false,
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: false,
		},
		{
			name:     "markup injection",
			input:    "<b>hi</b>",
			expected: false,
		},
		{
			name:     "shell characters",
			input:    "`rm -rf`",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserInput(tt.input))
		})
	}
}
