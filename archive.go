package xlsxgen

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
)

// MimeType is the media type of the produced documents.
const MimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Tree is a folder of named entries. Values are string or []byte files, or
// nested Trees for sub-folders.
type Tree map[string]any

// Put stores data at the slash separated name, creating folders on the way.
func (t Tree) Put(name string, data any) {
	dir, file := path.Split(name)
	folder := t
	for _, elem := range strings.Split(strings.Trim(dir, "/"), "/") {
		if elem == "" {
			continue
		}
		sub, ok := folder[elem].(Tree)
		if !ok {
			sub = Tree{}
			folder[elem] = sub
		}
		folder = sub
	}
	folder[file] = data
}

// Get returns the file stored at name.
func (t Tree) Get(name string) (any, bool) {
	var cur any = t
	for _, elem := range strings.Split(name, "/") {
		folder, ok := cur.(Tree)
		if !ok {
			return nil, false
		}
		if cur, ok = folder[elem]; !ok {
			return nil, false
		}
	}
	if _, isDir := cur.(Tree); isDir {
		return nil, false
	}
	return cur, true
}

// Walk calls fn for every file in name order.
func (t Tree) Walk(fn func(name string, data []byte) error) error {
	return t.walk("", fn)
}

func (t Tree) walk(prefix string, fn func(string, []byte) error) error {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		name := k
		if prefix != "" {
			name = prefix + "/" + k
		}
		var err error
		switch v := t[k].(type) {
		case Tree:
			err = v.walk(name, fn)
		case string:
			err = fn(name, []byte(v))
		case []byte:
			err = fn(name, v)
		default:
			err = fmt.Errorf("entry %s: unsupported type %T", name, v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Packager archives a Tree into a single document.
type Packager interface {
	Package(ctx context.Context, t Tree) ([]byte, error)
}

// ZipPackager writes the tree as a ZIP archive, deflated unless Store is set.
type ZipPackager struct {
	Store bool
}

func (p ZipPackager) Package(ctx context.Context, t Tree) ([]byte, error) {
	method := zip.Deflate
	if p.Store {
		method = zip.Store
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	err := t.Walk(func(name string, data []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
	if err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
