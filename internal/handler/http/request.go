package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/text/language"
)

// decodeOptionalJSON decodes the body into v. An empty body leaves v untouched.
func decodeOptionalJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// getIntQueryParam gets an int query parameter with a default value. An
// unparsable value yields 0 so validation reports it.
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return intVal
}

// getBoolQueryParam reports whether key is a true value ("true", "1", ...).
func getBoolQueryParam(r *http.Request, key string) bool {
	val, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && val
}

func getOptionalQueryParam(r *http.Request, key string) *string {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}
	return &val
}

// requestLanguages returns the preferred languages: the "lang" query
// parameter first, then Accept-Language by quality.
func requestLanguages(r *http.Request) []string {
	var langs []string
	if lang := r.URL.Query().Get("lang"); lang != "" {
		langs = append(langs, lang)
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil {
		return langs
	}
	for _, tag := range tags {
		langs = append(langs, tag.String())
	}
	return langs
}
