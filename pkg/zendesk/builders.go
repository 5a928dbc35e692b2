package zendesk

import (
	"strconv"
	"strings"
)

// TicketOptions holds the optional fields of a ticket built from a subject.
type TicketOptions struct {
	RequesterName  string
	RequesterEmail string
	Tags           []string
	Channel        string
	Priority       string
	Type           string
}

// TicketFromSubject builds a ticket payload from a subject and first comment.
func TicketFromSubject(subject, description string, opts TicketOptions) Object {
	ticket := Object{
		"subject": subject,
		"comment": Object{"body": description},
	}

	if opts.RequesterName != "" || opts.RequesterEmail != "" {
		requester := Object{}
		setIfNotEmpty(requester, "name", opts.RequesterName)
		setIfNotEmpty(requester, "email", opts.RequesterEmail)
		ticket["requester"] = requester
	}

	if len(opts.Tags) > 0 {
		ticket["tags"] = append([]string(nil), opts.Tags...)
	}

	if opts.Channel != "" {
		ticket["via"] = Object{"channel": opts.Channel}
	}

	setIfNotEmpty(ticket, "priority", opts.Priority)
	setIfNotEmpty(ticket, "type", opts.Type)

	return Object{"ticket": ticket}
}

// TicketFromPayload wraps a caller-built ticket. A payload already wrapped
// under "ticket" is returned unchanged.
func TicketFromPayload(payload Object) Object {
	return wrap("ticket", payload)
}

// TicketComment builds an update payload that appends a comment to a ticket.
func TicketComment(text string, public bool) Object {
	return Object{
		"ticket": Object{
			"comment": Object{"public": public, "body": text},
		},
	}
}

// RequestFields holds the fields of an end-user request. Empty fields are omitted.
type RequestFields struct {
	Subject     string
	Description string
	Comment     string
	Status      string
	RequesterID int64
}

// BuildRequest builds a request payload containing only the non-empty fields.
func BuildRequest(fields RequestFields) Object {
	request := Object{}
	setIfNotEmpty(request, "subject", fields.Subject)
	setIfNotEmpty(request, "description", fields.Description)

	if fields.Comment != "" {
		request["comment"] = Object{"body": fields.Comment}
	}

	setIfNotEmpty(request, "status", fields.Status)

	if fields.RequesterID != 0 {
		request["requester_id"] = fields.RequesterID
	}

	return Object{"request": request}
}

// RequestFromPayload wraps a caller-built request.
func RequestFromPayload(payload Object) Object {
	return wrap("request", payload)
}

// BuildUser builds a user payload. Empty fields are omitted; extra fields
// are copied last and win over name, email and role.
func BuildUser(name, email, role string, extra Object) Object {
	user := Object{}
	setIfNotEmpty(user, "name", name)
	setIfNotEmpty(user, "email", email)
	setIfNotEmpty(user, "role", role)

	for k, v := range extra {
		user[k] = v
	}

	return Object{"user": user}
}

// UserFromPayload wraps a caller-built user.
func UserFromPayload(payload Object) Object {
	return wrap("user", payload)
}

// ArticleOptions holds the optional fields of a Help Center article.
type ArticleOptions struct {
	Locale            string
	PermissionGroupID int64
	UserSegmentID     int64
	LabelNames        []string
	Draft             bool
}

// ArticleFromTitle builds an article payload from a title and HTML body.
func ArticleFromTitle(title, body string, opts ArticleOptions) Object {
	article := Object{"title": title, "body": body}
	setIfNotEmpty(article, "locale", opts.Locale)

	if opts.PermissionGroupID != 0 {
		article["permission_group_id"] = opts.PermissionGroupID
	}

	if opts.UserSegmentID != 0 {
		article["user_segment_id"] = opts.UserSegmentID
	}

	if len(opts.LabelNames) > 0 {
		article["label_names"] = append([]string(nil), opts.LabelNames...)
	}

	if opts.Draft {
		article["draft"] = true
	}

	return Object{"article": article}
}

// ArticleFromPayload wraps a caller-built article.
func ArticleFromPayload(payload Object) Object {
	return wrap("article", payload)
}

// JoinIDs encodes ids as the comma-separated list used by show_many endpoints.
func JoinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}

	return strings.Join(parts, ",")
}

func wrap(key string, payload Object) Object {
	if len(payload) == 1 {
		if _, ok := payload[key]; ok {
			return payload
		}
	}

	return Object{key: payload}
}

func setIfNotEmpty(obj Object, key, value string) {
	if value != "" {
		obj[key] = value
	}
}
