// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package manager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/djinn/internal/util"
)

// repository returns the path of the local checkout of the given source.
func (store *Store) repository(source *Source) string {
	return filepath.Join(store.SourceDirectory(), source.Name)
}

// fetch brings the local checkout of the given remote source up to date with
// its repository, cloning it if it was never cloned or is corrupt, and checks
// out the requested revision.
func (store *Store) fetch(source *Source) (*git.Repository, error) {
	path := store.repository(source)

	s := util.NewSpinner(" fetching " + source.URL)
	s.Start()
	defer s.Stop()

	if repository, err := store.update(source, path); err == nil {
		return repository, checkout(repository, source.Ref)
	} else if !errors.Is(err, git.ErrRepositoryNotExists) {
		logrus.Debug(err)
		logrus.Warn("Updating repository failed, making a fresh clone")
		_ = os.RemoveAll(path)
	}

	logrus.WithField("url", source.URL).Info("Cloning plugin repository...")
	repository, err := git.PlainClone(path, false, &git.CloneOptions{
		URL:      source.URL,
		Progress: store.Progress,
	})
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", source.URL, err)
	}

	return repository, checkout(repository, source.Ref)
}

// update pulls an existing checkout. Checkouts of a specific revision are
// detached, so they only fetch.
func (store *Store) update(source *Source, path string) (*git.Repository, error) {
	repository, err := git.PlainOpen(path)
	if err != nil {
		return nil, err
	}

	logrus.WithField("path", path).Info("Updating plugin repository...")

	if source.Ref != "" {
		err = repository.Fetch(&git.FetchOptions{
			Tags:     git.AllTags,
			Progress: store.Progress,
		})
	} else {
		var worktree *git.Worktree
		if worktree, err = repository.Worktree(); err != nil {
			return nil, err
		}

		err = worktree.Pull(&git.PullOptions{
			RemoteURL: source.URL,
			Progress:  store.Progress,
		})
	}

	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil, err
	}

	return repository, nil
}

// checkout moves the worktree to the given revision, which may name a tag,
// a branch or a commit.
func checkout(repository *git.Repository, ref string) error {
	if ref == "" {
		return nil
	}

	hash, err := repository.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		// Remote branches are not mirrored locally by a clone.
		hash, err = repository.ResolveRevision(plumbing.Revision("refs/remotes/origin/" + ref))
		if err != nil {
			return fmt.Errorf("unable to find revision %q: %w", ref, err)
		}
	}

	worktree, err := repository.Worktree()
	if err != nil {
		return err
	}

	logrus.WithField("hash", hash.String()).Debug("Checking out revision")
	return worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true})
}
