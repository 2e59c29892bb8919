/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"html"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
)

// serveHomePage lists the portals; every one starts a new game session
// already showing that portal.
func serveHomePage(cfg *Config, store *contentStore) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var htmlBody strings.Builder

		htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		htmlBody.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		htmlBody.WriteString(getFavicon(cfg.prefix))
		htmlBody.WriteString(`<link rel="stylesheet" href="` + cfg.prefix + `/assets/matchbox/app.css">`)
		htmlBody.WriteString(`<title>matchbox</title></head><body><main id="home"><h1>matchbox</h1><div class="portals">`)

		for _, p := range store.Content().Portals {
			htmlBody.WriteString(fmt.Sprintf(`<a class="portal" href="%s%s?portal=%s"><img src="%s" alt=""><div class="portal-name">%s</div></a>`,
				cfg.prefix,
				playPath,
				html.EscapeString(url.QueryEscape(p.Name)),
				html.EscapeString(contentURL(cfg, p.Icon)),
				html.EscapeString(p.Name),
			))
		}

		htmlBody.WriteString(`</div></main></body></html>`)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		_, _ = w.Write([]byte(htmlBody.String()))
	}
}

func serveHealthCheck(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte("Ok\n"))
		if err != nil {
			errs <- err

			return
		}
	}
}

// serveContent serves files from the content source, so that images and
// backgrounds referenced by the documents resolve.
func serveContent(cfg *Config, store *contentStore, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		fname, ok := contentPath(p.ByName("filepath"))
		if !ok {
			http.NotFound(w, r)
			return
		}

		data, err := fs.ReadFile(store.fsys, fname)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("Content-Type", contentType(fname))
		securityHeaders(cfg, w)

		written, err := w.Write(data)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Content file %s (%s) to %s in %s",
			fname,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveRobots(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		// Sessions are private; only the landing page may be indexed.
		data := "User-agent: *\nAllow: " + cfg.prefix + "/$\nDisallow: " + cfg.prefix + playPath + "/\nDisallow: " + cfg.prefix + "/content/\n"

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(data))
		if err != nil {
			errs <- err

			return
		}
	}
}
