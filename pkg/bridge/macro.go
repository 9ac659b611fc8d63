package bridge

import (
	"context"
	"strconv"
	"strings"

	"pkt.systems/pslog"

	"github.com/lumigraph/omebridge/pkg/types"
)

// Neutral results returned when an operation fails: the calling script
// must keep running, so errors go to the log side channel and the call
// still yields its declared shape.
const (
	neutralEmpty = ""
	neutralID    = "-1"
	neutralFalse = "false"
)

// Call dispatches one macro invocation by name with loosely-typed
// string arguments and returns a stringified result: a comma-joined
// list of ids, a single id, a boolean, or an empty string. Failures
// are reported through the logger carried in ctx and never escape as
// errors. Table accumulation (AddToTable) is API-only: its rows come
// from the host's measurement buffer, not from string arguments.
func (b *Bridge) Call(ctx context.Context, name string, args ...string) string {
	log := pslog.Ctx(ctx).With("macro", name)

	fail := func(neutral string, err error) string {
		log.Error("macro call failed", "err", err)
		return neutral
	}

	switch name {
	case "connect":
		port, err := parseID(arg(args, 1))
		if err != nil {
			return fail(neutralFalse, err)
		}
		cfg := types.Config{
			Backend:  types.BackendSQLite,
			Host:     arg(args, 0),
			Port:     int(port),
			Username: arg(args, 2),
			Password: arg(args, 3),
		}
		if err := b.Connect(ctx, cfg); err != nil {
			return fail(neutralFalse, err)
		}
		return "true"

	case "disconnect":
		if err := b.Disconnect(ctx); err != nil {
			return fail(neutralEmpty, err)
		}
		return neutralEmpty

	case "switchGroup":
		groupID, err := parseID(arg(args, 0))
		if err != nil {
			return fail(neutralID, err)
		}
		id, err := b.SwitchGroup(ctx, groupID)
		if err != nil {
			return fail(neutralID, err)
		}
		return formatID(id)

	case "listForUser":
		id, err := b.SetUser(ctx, arg(args, 0))
		if err != nil {
			log.Warn("could not retrieve user", "user", arg(args, 0), "err", err)
		}
		return formatID(id)

	case "list":
		return b.callList(ctx, log, args)

	case "createProject":
		id, err := b.CreateProject(ctx, arg(args, 0), arg(args, 1))
		if err != nil {
			return fail(neutralID, err)
		}
		return formatID(id)

	case "createDataset":
		var projectID *int64
		if raw := arg(args, 2); raw != "" {
			id, err := parseID(raw)
			if err != nil {
				return fail(neutralID, err)
			}
			projectID = &id
		}
		id, err := b.CreateDataset(ctx, arg(args, 0), arg(args, 1), projectID)
		if err != nil {
			return fail(neutralID, err)
		}
		return formatID(id)

	case "createTag":
		id, err := b.CreateTag(ctx, arg(args, 0), arg(args, 1))
		if err != nil {
			return fail(neutralID, err)
		}
		return formatID(id)

	case "createKeyValuePair":
		id, err := b.CreateKeyValuePair(ctx, arg(args, 0), arg(args, 1))
		if err != nil {
			return fail(neutralID, err)
		}
		return formatID(id)

	case "link", "unlink":
		id1, err := parseID(arg(args, 1))
		if err != nil {
			return fail(neutralEmpty, err)
		}
		id2, err := parseID(arg(args, 3))
		if err != nil {
			return fail(neutralEmpty, err)
		}
		if name == "link" {
			err = b.Link(ctx, arg(args, 0), id1, arg(args, 2), id2)
		} else {
			err = b.Unlink(ctx, arg(args, 0), id1, arg(args, 2), id2)
		}
		if err != nil {
			return fail(neutralEmpty, err)
		}
		return neutralEmpty

	case "delete":
		id, err := parseID(arg(args, 1))
		if err != nil {
			return fail(neutralEmpty, err)
		}
		if err := b.Delete(ctx, arg(args, 0), id); err != nil {
			return fail(neutralEmpty, err)
		}
		return neutralEmpty

	case "getName":
		id, err := parseID(arg(args, 1))
		if err != nil {
			return fail(neutralEmpty, err)
		}
		name, err := b.GetName(ctx, arg(args, 0), id)
		if err != nil {
			return fail(neutralEmpty, err)
		}
		return name

	case "addFile":
		id, err := parseID(arg(args, 1))
		if err != nil {
			return fail(neutralID, err)
		}
		fileID, err := b.AttachFile(ctx, arg(args, 0), id, arg(args, 2))
		if err != nil {
			return fail(neutralID, err)
		}
		return formatID(fileID)

	case "deleteFile":
		id, err := parseID(arg(args, 0))
		if err != nil {
			return fail(neutralEmpty, err)
		}
		if err := b.DeleteFile(ctx, id); err != nil {
			return fail(neutralEmpty, err)
		}
		return neutralEmpty

	case "saveTable":
		id, err := parseID(arg(args, 2))
		if err != nil {
			return fail(neutralEmpty, err)
		}
		if err := b.SaveTable(ctx, arg(args, 0), arg(args, 1), id); err != nil {
			return fail(neutralEmpty, err)
		}
		return neutralEmpty

	case "saveTableAsFile":
		if err := b.SaveTableAsFile(arg(args, 0), arg(args, 1), arg(args, 2)); err != nil {
			return fail(neutralEmpty, err)
		}
		return neutralEmpty

	case "clearTable":
		b.ClearTable(arg(args, 0))
		return neutralEmpty

	case "getKeyValuePairs":
		id, err := parseID(arg(args, 1))
		if err != nil {
			return fail(neutralEmpty, err)
		}
		pairs, err := b.KeyValuePairs(ctx, arg(args, 0), id, arg(args, 2))
		if err != nil {
			return fail(neutralEmpty, err)
		}
		return pairs

	case "getValue":
		id, err := parseID(arg(args, 1))
		if err != nil {
			return fail(neutralEmpty, err)
		}
		var def *string
		if len(args) > 3 {
			d := args[3]
			def = &d
		}
		value, err := b.GetValue(ctx, arg(args, 0), id, arg(args, 2), def)
		if err != nil {
			return fail(neutralEmpty, err)
		}
		return value

	case "getImage":
		id, err := parseID(arg(args, 0))
		if err != nil {
			return fail(neutralEmpty, err)
		}
		region, err := b.GetImage(ctx, id, arg(args, 1))
		if err != nil {
			return fail(neutralEmpty, err)
		}
		return formatID(region.ImageID)

	case "importImage":
		datasetID, err := parseID(arg(args, 0))
		if err != nil {
			return fail(neutralEmpty, err)
		}
		ids, err := b.ImportImages(ctx, datasetID, arg(args, 1))
		if err != nil {
			return fail(neutralEmpty, err)
		}
		return joinIDs(ids)

	case "downloadImage":
		id, err := parseID(arg(args, 0))
		if err != nil {
			return fail(neutralEmpty, err)
		}
		paths, err := b.DownloadImage(ctx, id, arg(args, 1))
		if err != nil {
			return fail(neutralEmpty, err)
		}
		return strings.Join(paths, ",")

	case "removeROIs":
		id, err := parseID(arg(args, 0))
		if err != nil {
			return fail("0", err)
		}
		n, err := b.RemoveROIs(ctx, id)
		if err != nil {
			return fail("0", err)
		}
		return strconv.Itoa(n)

	case "sudo":
		if err := b.Sudo(ctx, arg(args, 0)); err != nil {
			return fail(neutralEmpty, err)
		}
		return neutralEmpty

	case "endSudo":
		if err := b.EndSudo(); err != nil {
			return fail(neutralEmpty, err)
		}
		return neutralEmpty

	default:
		log.Error("no such macro")
		return neutralEmpty
	}
}

// callList handles the three arities of the list macro: every object
// of a kind, by exact name, or inside a parent container.
func (b *Bridge) callList(ctx context.Context, log pslog.Logger, args []string) string {
	var (
		ids []int64
		err error
	)
	switch {
	case arg(args, 1) == "":
		ids, err = b.List(ctx, arg(args, 0))
	case arg(args, 2) == "":
		ids, err = b.ListByName(ctx, arg(args, 0), arg(args, 1))
	default:
		var parentID int64
		parentID, err = parseID(arg(args, 2))
		if err == nil {
			ids, err = b.ListIn(ctx, arg(args, 0), arg(args, 1), parentID)
		}
	}
	if err != nil {
		log.Error("macro call failed", "err", err)
		return neutralEmpty
	}
	return joinIDs(ids)
}

// arg returns the i-th argument or "" when absent.
func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// parseID parses a decimal object id.
func parseID(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// joinIDs renders ids as a comma-delimited list.
func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = formatID(id)
	}
	return strings.Join(parts, ",")
}
