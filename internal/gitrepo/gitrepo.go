// Package gitrepo derives source link settings from a project's git repository.
package gitrepo

import (
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/pkg/errors"
)

var remotePattern = regexp.MustCompile(`^(?:https://|git@)(github\.com|gitlab\.com)[:/]([^/]+)/(.+?)(?:\.git)?$`)

// Detect builds a provider directive and default revision from the repository
// containing dir. The directive is derived from the origin remote URL and the
// revision is the current HEAD commit hash.
func Detect(dir string) (directive, revision string, err error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", errors.Wrapf(err, "failed to open repo at %q", dir)
	}
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to get repo remote")
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", errors.New("repo remote has no URLs")
	}
	directive, err = DirectiveFromRemote(urls[0])
	if err != nil {
		return "", "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", "", errors.Wrap(err, "failed to resolve repo HEAD")
	}
	return directive, head.Hash().String(), nil
}

// DirectiveFromRemote converts a git remote URL into the equivalent provider
// shorthand directive. Both https and ssh remote forms are recognized for
// github.com and gitlab.com.
func DirectiveFromRemote(remoteURL string) (string, error) {
	m := remotePattern.FindStringSubmatch(strings.TrimSuffix(remoteURL, "/"))
	if m == nil {
		return "", errors.Errorf("unsupported remote URL %q, configure a source link directive instead", remoteURL)
	}
	host, org, repo := m[1], m[2], m[3]
	provider := strings.TrimSuffix(host, ".com")
	return provider + "://" + org + "/" + repo, nil
}
