// Copyright 2015-2017 Piprate Limited
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ld

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/pquerna/cachecontrol"
)

const (
	// acceptHeader is an HTTP Accept header that prefers JSON-LD.
	acceptHeader = "application/ld+json, application/json;q=0.9, application/javascript;q=0.5, text/javascript;q=0.5, text/plain;q=0.2, */*;q=0.1"

	ApplicationJSONLDType = "application/ld+json"

	linkHeaderRel = "http://www.w3.org/ns/json-ld#context"
)

// RemoteDocument is a document retrieved from a remote source.
type RemoteDocument struct {
	DocumentURL string
	Document    interface{}
	ContextURL  string
}

// DocumentLoader knows how to load remote documents and local files
// referenced by an @context entry or an IRI input (spec.md §5 collaborator
// contracts).
type DocumentLoader interface {
	LoadDocument(u string) (*RemoteDocument, error)
}

// DefaultDocumentLoader is a standard implementation of DocumentLoader
// which can retrieve documents via HTTP or from the local filesystem.
type DefaultDocumentLoader struct {
	httpClient *http.Client
}

// NewDefaultDocumentLoader creates a new instance of DefaultDocumentLoader.
func NewDefaultDocumentLoader(httpClient *http.Client) *DefaultDocumentLoader {
	rval := &DefaultDocumentLoader{httpClient: httpClient}
	if rval.httpClient == nil {
		rval.httpClient = http.DefaultClient
	}
	return rval
}

// DocumentFromReader decodes a JSON resource streamed from r.
func DocumentFromReader(r io.Reader) (interface{}, error) {
	var document interface{}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&document); err != nil {
		return nil, NewJsonLdError(LoadingDocumentFailed, err)
	}
	return document, nil
}

// LoadDocument returns a RemoteDocument containing the contents of the
// JSON resource at u.
func (dl *DefaultDocumentLoader) LoadDocument(u string) (*RemoteDocument, error) {
	parsedURL, err := url.Parse(u)
	if err != nil {
		return nil, NewJsonLdError(LoadingDocumentFailed, fmt.Sprintf("error parsing URL: %s", u))
	}

	remoteDoc := &RemoteDocument{}

	protocol := parsedURL.Scheme
	if protocol != "http" && protocol != "https" {
		remoteDoc.DocumentURL = u
		var file *os.File
		file, err = os.Open(u)
		if err != nil {
			return nil, NewJsonLdError(LoadingDocumentFailed, err)
		}
		defer file.Close()

		remoteDoc.Document, err = DocumentFromReader(file)
		if err != nil {
			return nil, NewJsonLdError(LoadingDocumentFailed, err)
		}
		return remoteDoc, nil
	}

	req, err := http.NewRequest("GET", u, http.NoBody)
	if err != nil {
		return nil, NewJsonLdError(LoadingDocumentFailed, err)
	}
	req.Header.Add("Accept", acceptHeader)

	res, err := dl.httpClient.Do(req)
	if err != nil {
		return nil, NewJsonLdError(LoadingDocumentFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, NewJsonLdError(LoadingDocumentFailed,
			fmt.Sprintf("bad response status code: %d", res.StatusCode))
	}

	remoteDoc.DocumentURL = res.Request.URL.String()

	contentType := res.Header.Get("Content-Type")
	linkHeader := res.Header.Get("Link")

	if len(linkHeader) > 0 {
		parsedLinkHeader := ParseLinkHeader(linkHeader)
		contextLink := parsedLinkHeader[linkHeaderRel]
		if contextLink != nil && contentType != ApplicationJSONLDType &&
			(contentType == "application/json" || rApplicationJSON.MatchString(contentType)) {

			if len(contextLink) > 1 {
				return nil, NewJsonLdError(LoadingDocumentFailed, "multiple context link headers")
			} else if len(contextLink) == 1 {
				remoteDoc.ContextURL = contextLink[0]["target"]
			}
		}

		alternateLink := parsedLinkHeader["alternate"]
		if len(alternateLink) > 0 &&
			alternateLink[0]["type"] == ApplicationJSONLDType &&
			!rApplicationJSON.MatchString(contentType) {

			finalURL := Resolve(u, alternateLink[0]["target"])
			return dl.LoadDocument(finalURL)
		}
	}

	remoteDoc.Document, err = DocumentFromReader(res.Body)
	if err != nil {
		return nil, NewJsonLdError(LoadingDocumentFailed, err)
	}
	return remoteDoc, nil
}

var rSplitOnComma = regexp.MustCompile("(?:<[^>]*?>|\"[^\"]*?\"|[^,])+")
var rLinkHeader = regexp.MustCompile(`\s*<([^>]*?)>\s*(?:;\s*(.*))?`)
var rApplicationJSON = regexp.MustCompile(`^application/(\w*\+)?json$`)
var rParams = regexp.MustCompile("(.*?)=(?:(?:\"([^\"]*?)\")|([^\"]*?))\\s*(?:(?:;\\s*)|$)")

// ParseLinkHeader parses an HTTP Link header, keyed by the value of "rel".
//
//	Link: <http://json-ld.org/contexts/person.jsonld>; \
//	  rel="http://www.w3.org/ns/json-ld#context"; type="application/ld+json"
func ParseLinkHeader(header string) map[string][]map[string]string {
	rval := make(map[string][]map[string]string)

	entries := rSplitOnComma.FindAllString(header, -1)
	if len(entries) == 0 {
		return rval
	}

	for _, entry := range entries {
		if !rLinkHeader.MatchString(entry) {
			continue
		}
		match := rLinkHeader.FindStringSubmatch(entry)

		result := map[string]string{
			"target": match[1],
		}
		params := match[2]
		matches := rParams.FindAllStringSubmatch(params, -1)
		for _, match := range matches {
			if match[2] == "" {
				result[match[1]] = match[3]
			} else {
				result[match[1]] = match[2]
			}
		}
		rel := result["rel"]
		relVal, hasRel := rval[rel]
		if hasRel {
			rval[rel] = append(relVal, result)
		} else {
			rval[rel] = []map[string]string{result}
		}
	}
	return rval
}

type cachedRemoteDocument struct {
	remoteDocument *RemoteDocument
	expireTime     time.Time
	neverExpires   bool
}

// CachingDocumentLoader is a DocumentLoader decorator that caches
// documents per RFC 7234 caching headers, via
// github.com/pquerna/cachecontrol. Repeated remote @context
// dereferences (spec.md §6.5 active context construction) are common
// when many documents share a vocabulary, so this avoids refetching an
// unexpired context on every call.
type CachingDocumentLoader struct {
	httpClient *http.Client
	cache      map[string]*cachedRemoteDocument
}

// NewCachingDocumentLoader creates a new CachingDocumentLoader.
func NewCachingDocumentLoader(httpClient *http.Client) *CachingDocumentLoader {
	rval := &CachingDocumentLoader{
		httpClient: httpClient,
		cache:      make(map[string]*cachedRemoteDocument),
	}
	if httpClient == nil {
		rval.httpClient = http.DefaultClient
	}
	return rval
}

// LoadDocument returns a RemoteDocument containing the contents of the
// JSON resource at u, serving from cache when the cached entry hasn't
// expired.
func (cdl *CachingDocumentLoader) LoadDocument(u string) (*RemoteDocument, error) {
	entry, ok := cdl.cache[u]
	now := time.Now()
	if ok && (entry.neverExpires || entry.expireTime.After(now)) {
		return entry.remoteDocument, nil
	}

	parsedURL, err := url.Parse(u)
	if err != nil {
		return nil, NewJsonLdError(LoadingDocumentFailed, fmt.Sprintf("error parsing URL: %s", u))
	}

	remoteDoc := &RemoteDocument{}

	neverExpires := false
	shouldCache := false
	expireTime := now

	protocol := parsedURL.Scheme
	if protocol != "http" && protocol != "https" {
		remoteDoc.DocumentURL = u
		var file *os.File
		file, err = os.Open(u)
		if err != nil {
			return nil, NewJsonLdError(LoadingDocumentFailed, err)
		}
		defer file.Close()
		remoteDoc.Document, err = DocumentFromReader(file)
		if err != nil {
			return nil, NewJsonLdError(LoadingDocumentFailed, err)
		}
		neverExpires = true
		shouldCache = true
	} else {
		req, err := http.NewRequest("GET", u, http.NoBody)
		if err != nil {
			return nil, NewJsonLdError(LoadingDocumentFailed, err)
		}
		req.Header.Add("Accept", acceptHeader)

		res, err := cdl.httpClient.Do(req)
		if err != nil {
			return nil, NewJsonLdError(LoadingDocumentFailed, err)
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			return nil, NewJsonLdError(LoadingDocumentFailed,
				fmt.Sprintf("bad response status code: %d", res.StatusCode))
		}

		remoteDoc.DocumentURL = res.Request.URL.String()

		contentType := res.Header.Get("Content-Type")
		linkHeader := res.Header.Get("Link")

		if len(linkHeader) > 0 {
			parsedLinkHeader := ParseLinkHeader(linkHeader)
			contextLink := parsedLinkHeader[linkHeaderRel]
			if contextLink != nil && contentType != ApplicationJSONLDType {
				if len(contextLink) > 1 {
					return nil, NewJsonLdError(LoadingDocumentFailed, "multiple context link headers")
				} else if len(contextLink) == 1 {
					remoteDoc.ContextURL = contextLink[0]["target"]
				}
			}

			alternateLink := parsedLinkHeader["alternate"]
			if len(alternateLink) > 0 &&
				alternateLink[0]["type"] == ApplicationJSONLDType &&
				!rApplicationJSON.MatchString(contentType) {

				finalURL := Resolve(u, alternateLink[0]["target"])
				remoteDoc, err = cdl.LoadDocument(finalURL)
				if err != nil {
					return nil, NewJsonLdError(LoadingDocumentFailed, err)
				}
			}
		}

		reasons, resExpireTime, ccErr := cachecontrol.CachableResponse(req, res, cachecontrol.Options{})
		if ccErr == nil && len(reasons) == 0 {
			shouldCache = true
			expireTime = resExpireTime
		}

		if remoteDoc.Document == nil {
			remoteDoc.Document, err = DocumentFromReader(res.Body)
			if err != nil {
				return nil, NewJsonLdError(LoadingDocumentFailed, err)
			}
		}
	}

	if shouldCache {
		cdl.cache[u] = &cachedRemoteDocument{
			remoteDocument: remoteDoc,
			expireTime:     expireTime,
			neverExpires:   neverExpires,
		}
	}

	return remoteDoc, nil
}
