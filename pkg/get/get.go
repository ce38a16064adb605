package get

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter"
	"github.com/mumoshu/pipeline/pkg/util/fileutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CacheDir is where remote sources are downloaded to. Downloads are reused
// across runs until the directory is removed.
var CacheDir = ".pipeline"

// Source is a parsed go-getter source of the form $repo//$path?$query.
type Source struct {
	Dir   string
	File  string
	Query string
}

// ParseSource splits src into the repository to download and the file to
// read from it.
func ParseSource(src string) (*Source, error) {
	parts := strings.Split(src, "//")
	if len(parts) < 2 {
		return nil, fmt.Errorf("format the src description with $repo//$path, like github.com/mumoshu/pipelines//demo.yaml: %s", src)
	}

	last := len(parts) - 1

	fileAndQuery := strings.SplitN(parts[last], "?", 2)
	file := fileAndQuery[0]
	var fileQuery string
	if len(fileAndQuery) > 1 {
		fileQuery = fileAndQuery[1]
	}

	dirAndQuery := strings.SplitN(strings.Join(parts[:last], "//"), "?", 2)
	dir := dirAndQuery[0]
	var dirQuery string
	if len(dirAndQuery) > 1 {
		dirQuery = dirAndQuery[1]
	}

	queries := []string{}
	for _, q := range []string{dirQuery, fileQuery} {
		if q != "" {
			queries = append(queries, q)
		}
	}

	if dir == "" || file == "" {
		return nil, fmt.Errorf("both $repo and $path must be set in %s", src)
	}

	return &Source{Dir: dir, File: file, Query: strings.Join(queries, "&")}, nil
}

// CacheKey is the directory under CacheDir the source is downloaded to.
func (s *Source) CacheKey() string {
	replacer := strings.NewReplacer("/", "_", ".", "_", ":", "_")
	key := replacer.Replace(s.Dir)
	if s.Query != "" {
		key = fmt.Sprintf("%s.%s", key, strings.Replace(s.Query, "&", "_", -1))
	}
	return key
}

func (s *Source) getterSrc() string {
	if s.Query == "" {
		return s.Dir
	}
	return strings.Join([]string{s.Dir, s.Query}, "?")
}

// GetBytes reads src, which is either a local file path or a go-getter
// source like github.com/owner/repo//path/to/file.yaml?ref=v1.
func GetBytes(ctx context.Context, src string) ([]byte, error) {
	if fileutil.Exists(src) {
		logrus.Debugf("reading local file %s", src)
		bytes, err := ioutil.ReadFile(src)
		if err != nil {
			return nil, errors.Wrapf(err, "read file %s", src)
		}
		return bytes, nil
	}

	source, err := ParseSource(src)
	if err != nil {
		return nil, err
	}

	pwd, err := os.Getwd()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	dst := filepath.Join(CacheDir, source.CacheKey())

	cached := false
	{
		stat, err := os.Stat(dst)
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "stat")
		} else if err == nil {
			if !stat.IsDir() {
				return nil, fmt.Errorf("%s is not directory. please remove it so that it can be used for caching downloads", dst)
			}
			cached = true
		}
	}

	if !cached {
		logrus.Debugf("downloading %s to %s", source.Dir, dst)

		client := &getter.Client{
			Ctx:  ctx,
			Src:  source.getterSrc(),
			Dst:  dst,
			Pwd:  pwd,
			Mode: getter.ClientModeDir,
		}

		if err := client.Get(); err != nil {
			return nil, errors.Wrap(err, "get")
		}
	}

	bytes, err := ioutil.ReadFile(filepath.Join(dst, source.File))
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	return bytes, nil
}
