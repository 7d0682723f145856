// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package replies

import (
	"encoding/json"
	"io/fs"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pluralForms lists the CLDR plural categories each locale must provide for
// plural messages.
var pluralForms = map[string][]string{
	"ru": {"one", "few", "many", "other"},
	"en": {"one", "other"},
}

func TestLocalesIntegrity(t *testing.T) {
	t.Parallel()

	files, err := fs.Glob(localeFS, "locales/active.*.json")
	require.NoError(t, err)
	require.Len(t, files, len(pluralForms), "every locale must declare its plural forms")

	ids := messageIDs()

	for _, file := range files {
		lang := strings.TrimSuffix(strings.TrimPrefix(path.Base(file), "active."), ".json")
		t.Run(lang, func(t *testing.T) {
			b, err := fs.ReadFile(localeFS, file)
			require.NoError(t, err)

			var messages map[string]any
			require.NoError(t, json.Unmarshal(b, &messages), "JSON must be valid")

			for _, id := range ids {
				v, ok := messages[id]
				if !assert.Truef(t, ok, "message %q is missing", id) {
					continue
				}
				switch v := v.(type) {
				case string:
					assert.NotEmptyf(t, v, "message %q is empty", id)
				case map[string]any:
					forms, ok := pluralForms[lang]
					require.True(t, ok, "unknown plural forms for %s", lang)
					for _, form := range forms {
						assert.Containsf(t, v, form, "message %q lacks the %q form", id, form)
					}
				default:
					t.Errorf("message %q has unexpected type %T", id, v)
				}
			}

			known := make(map[string]bool, len(ids))
			for _, id := range ids {
				known[id] = true
			}
			for id := range messages {
				assert.Truef(t, known[id], "message %q is never used", id)
			}
		})
	}
}
