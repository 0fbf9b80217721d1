package github

import "time"

// RepoFile is a file fetched from a repository at a specific ref
type RepoFile struct {
	Path    string `json:"path"`
	SHA     string `json:"sha"`
	Size    int    `json:"size"`
	Content string `json:"content"`
	HTMLURL string `json:"html_url,omitempty"`
}

// DirEntry is a single entry from a directory listing
type DirEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file" or "dir"
	Size int    `json:"size"`
	SHA  string `json:"sha"`
}

// CommitFile is one file to be written by a multi-file commit
type CommitFile struct {
	Path    string
	Content string
}

// CommitResult identifies the commit created by CommitFiles
type CommitResult struct {
	SHA     string    `json:"sha"`
	URL     string    `json:"url"`
	Branch  string    `json:"branch"`
	Message string    `json:"message"`
	Files   int       `json:"files"`
	Created time.Time `json:"created"`
}

// BranchInfo describes a repository branch head
type BranchInfo struct {
	Name      string `json:"name"`
	SHA       string `json:"sha"`
	Protected bool   `json:"protected"`
}

// ActorInfo describes the authenticated user or app
type ActorInfo struct {
	Login   string `json:"login"`
	Type    string `json:"type"`
	AppSlug string `json:"app_slug,omitempty"`
	Source  string `json:"source"`
}

// IssueInfo contains basic issue information
type IssueInfo struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	State     string    `json:"state"`
	URL       string    `json:"url"`
	Author    string    `json:"author"`
	Labels    []string  `json:"labels,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IssueComment represents a comment on an issue or PR
type IssueComment struct {
	CommentID int64     `json:"comment_id"`
	URL       string    `json:"url"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkflowInfo describes a GitHub Actions workflow
type WorkflowInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Path  string `json:"path"`
	State string `json:"state"`
}

// WorkflowRun describes one run of a workflow
type WorkflowRun struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	HeadBranch string    `json:"head_branch"`
	HeadSHA    string    `json:"head_sha"`
	Status     string    `json:"status"`
	Conclusion string    `json:"conclusion"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReleaseInfo represents information about a GitHub release
type ReleaseInfo struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
}

// RepositoryInfo describes a repository created or inspected by the workbench
type RepositoryInfo struct {
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description,omitempty"`
	DefaultBranch string `json:"default_branch"`
	Private       bool   `json:"private"`
	HTMLURL       string `json:"html_url"`
}
