package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func testStoreContract(t *testing.T, store Store) {
	t.Run("Should return nil for a missing key", func(t *testing.T) {
		value, err := store.Get("phone")
		assert.Nil(t, err)
		assert.Nil(t, value)
	})

	t.Run("Should overwrite existing values", func(t *testing.T) {
		assert.Nil(t, store.Set("phone", strPtr("600111222")))
		assert.Nil(t, store.Set("phone", strPtr("600333444")))

		value, err := store.Get("phone")
		assert.Nil(t, err)
		assert.Equal(t, "600333444", *value)
	})

	t.Run("Should remove the key when set to nil", func(t *testing.T) {
		assert.Nil(t, store.Set("email", strPtr("help@example.com")))
		assert.Nil(t, store.Set("email", nil))

		value, err := store.Get("email")
		assert.Nil(t, err)
		assert.Nil(t, value, "Expected email to be absent, not an empty string")
	})

	t.Run("Should keep an empty string distinct from absent", func(t *testing.T) {
		assert.Nil(t, store.Set("note", strPtr("")))

		value, err := store.Get("note")
		assert.Nil(t, err)
		if assert.NotNil(t, value) {
			assert.Equal(t, "", *value)
		}
		assert.Nil(t, store.Clear("note"))
	})

	t.Run("Should apply a batch of entries", func(t *testing.T) {
		err := store.SetMany(map[string]*string{
			"phone":    strPtr("600111222"),
			"email":    nil,
			"url":      strPtr("example.com"),
			"location": nil,
		})
		assert.Nil(t, err)

		value, _ := store.Get("url")
		assert.Equal(t, "example.com", *value)

		value, _ = store.Get("email")
		assert.Nil(t, value)
	})

	t.Run("Should clear a batch of keys", func(t *testing.T) {
		assert.Nil(t, store.Clear("phone", "email", "url", "location"))

		for _, key := range []string{"phone", "email", "url", "location"} {
			value, err := store.Get(key)
			assert.Nil(t, err)
			assert.Nil(t, value, "Expected %v to be cleared", key)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	testStoreContract(t, store)
	assert.Equal(t, 0, store.Len())
}

func TestSQLiteStore(t *testing.T) {
	dir := t.TempDir()

	db, err := OpenDB("test-passphrase", dir)
	if err != nil {
		t.Fatalf("could not open db: %v", err)
	}
	defer func() { CloseDB(db) }()

	store := NewSQLiteStore(db, "sosphone_prefs")
	assert.Equal(t, "sosphone_prefs", store.Name())
	testStoreContract(t, store)

	t.Run("Should isolate named stores sharing a db", func(t *testing.T) {
		other := NewSQLiteStore(db, "sosphone_platform")
		assert.Nil(t, other.Set("phone", strPtr("granted")))

		value, err := store.Get("phone")
		assert.Nil(t, err)
		assert.Nil(t, value)

		assert.Nil(t, store.Set("phone", strPtr("600111222")))
		assert.Nil(t, other.Clear("phone"))

		value, _ = store.Get("phone")
		assert.Equal(t, "600111222", *value)
	})

	t.Run("Should persist across connections", func(t *testing.T) {
		assert.Nil(t, CloseDB(db))

		db, err = OpenDB("test-passphrase", dir)
		if err != nil {
			t.Fatalf("could not reopen db: %v", err)
		}

		value, err := NewSQLiteStore(db, "sosphone_prefs").Get("phone")
		assert.Nil(t, err)
		assert.Equal(t, "600111222", *value)
	})
}
