// Package cachefile implements a persisted snapshot of a scanned directory
// tree: a text stream whose first meaningful line yields the scanned root
// path, followed by entries insertable by a co-designed reader. The
// grammar used here is gzip-compressed, depth-prefixed DFS preorder lines,
// read back in a bounded per-tick budget with a firstDir-peek/rewind
// protocol for deciding whether a cache file matches a directory being
// re-read.
package cachefile

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Hubcapp/qdirstat/internal/tree"
)

// DefaultCacheName is the well-known cache filename: an entry with this
// name inside a directory being read triggers cache preemption.
const DefaultCacheName = ".qdirstat.cache.gz"

const magicHeader = "# qdirstat-cache-1"

// Writer serializes a subtree to the on-disk cache format.
type Writer struct {
	f  *os.File
	gz *gzip.Writer
}

// NewWriter creates (truncating) the cache file at path.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cache file %s: %w", path, err)
	}
	return &Writer{f: f, gz: gzip.NewWriter(f)}, nil
}

// WriteTree serializes root (whose absolute path is firstDir) and its
// descendants in depth-prefixed DFS preorder.
func (w *Writer) WriteTree(root *tree.Node, firstDir string) error {
	if _, err := fmt.Fprintln(w.gz, magicHeader); err != nil {
		return err
	}
	if err := w.writeNode(root, firstDir, 0); err != nil {
		return err
	}
	for _, child := range root.Children {
		if err := w.writeSubtree(child, 1); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeSubtree(n *tree.Node, depth int) error {
	if err := w.writeNode(n, n.Name, depth); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := w.writeSubtree(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeNode(n *tree.Node, name string, depth int) error {
	kind := "F"
	if n.IsDir() {
		kind = "D"
	}
	_, err := fmt.Fprintf(w.gz, "%s %d %q %d %d %d %d %d %d %d %d %d\n",
		kind, depth, name, n.Size, n.MTime.Unix(), n.Mode, n.UID, n.GID, n.Dev, n.Ino, n.Nlink, int(n.State))
	return err
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.gz.Close(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

// headerEntry holds the parsed depth-0 line until Read actually
// materializes it into the tree.
type headerEntry struct {
	name                                    string
	size                                    int64
	mtime                                   time.Time
	mode                                    uint32
	uid, gid                                uint32
	dev, ino, nlink                         uint64
	state                                   tree.ReadState
}

// Reader consumes a cache file in bounded chunks, attaching parsed nodes
// under parent via onChildAdded (which is expected to call
// tree.Tree.ChildAdded or equivalent).
type Reader struct {
	path         string
	parent       *tree.Node
	onChildAdded func(parent, child *tree.Node)

	f    *os.File
	gz   *gzip.Reader
	scan *bufio.Scanner

	header    headerEntry
	headerSet bool
	started   bool // header node has been materialized into the tree

	stack []*tree.Node
	eof   bool
	err   error
}

// NewReader opens cacheFile and parses just enough of the header to expose
// FirstDir(); no nodes are created yet.
func NewReader(cacheFile string, parent *tree.Node, onChildAdded func(parent, child *tree.Node)) (*Reader, error) {
	r := &Reader{path: cacheFile, parent: parent, onChildAdded: onChildAdded}
	if err := r.open(); err != nil {
		return nil, err
	}
	if err := r.parseHeader(); err != nil {
		r.close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) open() error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("open cache file %s: %w", r.path, err)
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("gzip cache file %s: %w", r.path, err)
	}
	r.f = f
	r.gz = gz
	r.scan = bufio.NewScanner(gz)
	r.scan.Buffer(make([]byte, 64*1024), 1<<20)
	return nil
}

func (r *Reader) close() {
	if r.gz != nil {
		r.gz.Close()
	}
	if r.f != nil {
		r.f.Close()
	}
}

func (r *Reader) parseHeader() error {
	for r.scan.Scan() {
		line := r.scan.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ent, depth, _, err := parseLine(line)
		if err != nil {
			return err
		}
		if depth != 0 {
			return fmt.Errorf("cache file %s: expected depth-0 header line, got depth %d", r.path, depth)
		}
		r.header = ent
		r.headerSet = true
		return nil
	}
	if err := r.scan.Err(); err != nil {
		return err
	}
	return fmt.Errorf("cache file %s: empty or header-only", r.path)
}

// FirstDir returns the absolute path recorded in the cache's header line,
// used to decide whether this cache matches the directory currently being
// read.
func (r *Reader) FirstDir() string {
	return r.header.name
}

// Rewind resets the reader to the start of the stream. Since a gzip stream
// is not seekable, this closes and reopens the underlying file.
func (r *Reader) Rewind() error {
	r.close()
	r.started = false
	r.stack = nil
	r.eof = false
	r.err = nil
	if err := r.open(); err != nil {
		return err
	}
	return r.parseHeader()
}

// Rebind changes the node that the header line will be attached under once
// Read begins materializing entries. Cache preemption only learns the real
// attachment point (the tree's fresh root, or the preempted directory's
// parent) after FirstDir has already been checked against the directory
// being read, so the parent supplied to NewReader is a placeholder until
// this is called.
func (r *Reader) Rebind(parent *tree.Node) {
	r.parent = parent
}

// Close releases the underlying file without reading further. Used when a
// cache candidate's firstDir doesn't match and the reader is discarded.
func (r *Reader) Close() {
	r.close()
}

// OK reports whether the reader is still usable (no parse/IO error seen).
func (r *Reader) OK() bool { return r.err == nil }

// EOF reports whether the stream has been fully consumed.
func (r *Reader) EOF() bool { return r.eof }

// Read parses up to maxLines entries, inserting each as a node under the
// appropriate ancestor and invoking onChildAdded. This is CacheReadJob.Run's
// per-tick budget, so a large cache file never blocks the scheduler for
// more than one tick.
func (r *Reader) Read(maxLines int) (int, error) {
	processed := 0

	if !r.started {
		root := materialize(r.header)
		r.onChildAdded(r.parent, root)
		r.stack = []*tree.Node{root}
		r.started = true
		processed++
		if processed >= maxLines {
			return processed, nil
		}
	}

	for processed < maxLines {
		if !r.scan.Scan() {
			if err := r.scan.Err(); err != nil {
				r.err = err
				return processed, err
			}
			r.eof = true
			return processed, nil
		}

		line := r.scan.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ent, depth, isDir, err := parseLine(line)
		if err != nil {
			r.err = err
			return processed, err
		}
		if depth < 1 || depth > len(r.stack) {
			r.err = fmt.Errorf("cache file %s: out-of-order depth %d", r.path, depth)
			return processed, r.err
		}

		node := materializeKind(ent, isDir)
		parent := r.stack[depth-1]
		r.onChildAdded(parent, node)

		if depth == len(r.stack) {
			r.stack = append(r.stack, node)
		} else {
			r.stack = append(r.stack[:depth], node)
		}

		processed++
	}

	return processed, nil
}

func materialize(e headerEntry) *tree.Node {
	return materializeKind(e, true)
}

func materializeKind(e headerEntry, isDir bool) *tree.Node {
	var n *tree.Node
	if isDir {
		n = tree.NewDir(e.name)
	} else {
		n = tree.NewFile(e.name)
	}
	n.Size = e.size
	n.MTime = e.mtime
	n.Mode = toFileMode(e.mode)
	n.UID = e.uid
	n.GID = e.gid
	n.Dev = e.dev
	n.Ino = e.ino
	n.Nlink = e.nlink
	n.State = e.state
	return n
}

func toFileMode(mode uint32) os.FileMode {
	return os.FileMode(mode)
}

func parseLine(line string) (headerEntry, int, bool, error) {
	if len(line) < 2 {
		return headerEntry{}, 0, false, fmt.Errorf("malformed cache line %q", line)
	}
	kind := line[0]
	isDir := kind == 'D'
	if kind != 'D' && kind != 'F' {
		return headerEntry{}, 0, false, fmt.Errorf("malformed cache line %q: unknown kind %q", line, kind)
	}

	rest := strings.TrimSpace(line[1:])
	sp := strings.IndexByte(rest, ' ')
	if sp < 0 {
		return headerEntry{}, 0, false, fmt.Errorf("malformed cache line %q", line)
	}
	depth, err := strconv.Atoi(rest[:sp])
	if err != nil {
		return headerEntry{}, 0, false, fmt.Errorf("malformed cache line %q: %w", line, err)
	}
	rest = strings.TrimSpace(rest[sp+1:])

	if len(rest) == 0 || rest[0] != '"' {
		return headerEntry{}, 0, false, fmt.Errorf("malformed cache line %q: expected quoted name", line)
	}
	quoted, err := strconv.QuotedPrefix(rest)
	if err != nil {
		return headerEntry{}, 0, false, fmt.Errorf("malformed cache line %q: unterminated name", line)
	}
	name, err := strconv.Unquote(quoted)
	if err != nil {
		return headerEntry{}, 0, false, fmt.Errorf("malformed cache line %q: %w", line, err)
	}
	fields := strings.Fields(rest[len(quoted):])
	if len(fields) != 9 {
		return headerEntry{}, 0, false, fmt.Errorf("malformed cache line %q: expected 9 fields, got %d", line, len(fields))
	}

	nums := make([]int64, 9)
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return headerEntry{}, 0, false, fmt.Errorf("malformed cache line %q: %w", line, err)
		}
		nums[i] = v
	}

	ent := headerEntry{
		name:  name,
		size:  nums[0],
		mtime: time.Unix(nums[1], 0),
		mode:  uint32(nums[2]),
		uid:   uint32(nums[3]),
		gid:   uint32(nums[4]),
		dev:   uint64(nums[5]),
		ino:   uint64(nums[6]),
		nlink: uint64(nums[7]),
		state: tree.ReadState(nums[8]),
	}
	return ent, depth, isDir, nil
}
