package session

import (
	"context"
	"strings"

	"github.com/roach88/jsondb/internal/catalog"
	"github.com/roach88/jsondb/internal/query"
	"github.com/roach88/jsondb/internal/validate"
)

type command struct {
	name string
	run  func(*Session, context.Context) error
}

// commands lists the top-level commands in the order they are advertised.
var commands = []command{
	{"create", (*Session).create},
	{"show_all", (*Session).showAll},
	{"search", (*Session).search},
	{"update", (*Session).update},
	{"delete", (*Session).delete},
	{"quit", (*Session).quit},
}

// CommandNames returns the accepted top-level commands.
func CommandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}
	return names
}

// lookupCommand matches the literal, case-sensitive command keyword.
func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

const (
	promptTitle     = "Enter book title.\n"
	promptAuthor    = "Enter book author.\n"
	promptGenre     = "Enter book genre.\n"
	promptYear      = "Enter book release year.\n"
	promptBorrowers = "Enter names of borrowers in format \"Ivan, Oleg, Dmitriy\" (leave empty for none).\n"
	promptSearchBy  = "Type the attribute by which you want to find the book.\n"
	promptValue     = "Type the search value.\n"
	promptQueryID   = "Several books match. Choose the book by id.\n"
	promptUpdateBy  = "Type the attribute of the book you wish to update.\n"
	promptNewValue  = "Type the value you would like to insert.\n"
)

func (s *Session) create(ctx context.Context) error {
	var fields catalog.Fields
	var err error

	if fields.Title, err = s.collectText(ctx, promptTitle); err != nil {
		return err
	}
	if fields.Author, err = s.collectText(ctx, promptAuthor); err != nil {
		return err
	}
	if fields.Genre, err = s.collectText(ctx, promptGenre); err != nil {
		return err
	}
	if fields.Year, err = ask(ctx, s, promptYear, validate.Year); err != nil {
		return err
	}
	if fields.BorrowedBy, err = ask(ctx, s, promptBorrowers, validate.BorrowedNames); err != nil {
		return err
	}

	rec := s.records.Create(fields)
	s.mutations++
	s.logger.Debug("record created", "id", rec.ID)

	s.printf("Successfully created entry:\n")
	s.render(rec)
	return nil
}

func (s *Session) showAll(context.Context) error {
	s.render(s.records.All()...)
	return nil
}

func (s *Session) search(ctx context.Context) error {
	_, err := s.find(ctx)
	return err
}

func (s *Session) update(ctx context.Context) error {
	sel, ok, err := s.narrow(ctx)
	if err != nil || !ok {
		return err
	}

	attr, err := ask(ctx, s, promptUpdateBy, func(text string) (catalog.Attribute, error) {
		a, err := validate.Attribute(text, true)
		if err != nil {
			return a, err
		}
		if a == catalog.AttrID {
			return a, &validate.Rejection{Message: catalog.ErrImmutableID.Error()}
		}
		return a, nil
	})
	if err != nil {
		return err
	}

	var value catalog.FieldValue
	switch attr {
	case catalog.AttrYear:
		year, err := ask(ctx, s, promptYear, validate.Year)
		if err != nil {
			return err
		}
		value = catalog.Text(year.Text)
	case catalog.AttrBorrowedBy:
		names, err := ask(ctx, s, promptBorrowers, validate.BorrowedNames)
		if err != nil {
			return err
		}
		value = catalog.TextList(names)
	default:
		text, err := s.collectText(ctx, promptNewValue)
		if err != nil {
			return err
		}
		value = catalog.Text(text)
	}

	updated := sel.Record.Clone()
	if err := attr.Set(&updated, value); err != nil {
		s.internalError("update", err)
		return nil
	}
	if err := s.records.Replace(sel.ID, updated); err != nil {
		s.internalError("update", err)
		return nil
	}
	s.mutations++
	s.logger.Debug("record updated", "id", sel.ID, "attribute", attr.String())

	s.printf("Successfully updated entry:\n")
	s.render(updated)
	return nil
}

func (s *Session) delete(ctx context.Context) error {
	sel, ok, err := s.narrow(ctx)
	if err != nil || !ok {
		return err
	}

	prompt := "Do you wish to proceed with deleting an entry? To abort, type \"" + s.abortKeyword + "\".\n"
	confirm, err := s.collectText(ctx, prompt)
	if err != nil {
		return err
	}
	if strings.TrimSpace(confirm) == s.abortKeyword {
		s.printf("Deletion aborted.\n")
		return nil
	}

	removed, err := s.records.RemoveByID(sel.ID)
	if err != nil {
		s.internalError("delete", err)
		return nil
	}
	s.mutations++
	s.logger.Debug("record deleted", "id", removed.ID)

	s.printf("Deleted entry:\n")
	s.render(removed)
	return nil
}

func (s *Session) quit(ctx context.Context) error {
	records := s.records.All()
	if err := s.saver.Save(ctx, records); err != nil {
		s.logger.Error("save failed", "document", s.saver.Location(), "error", err)
		s.printf("Error: could not save %s: %v\nThe session stays open; fix the problem and quit again.\n", s.saver.Location(), err)
		return nil
	}
	s.logger.Info("session saved", "document", s.saver.Location(), "records", len(records), "mutations", s.mutations)

	s.printf("\nJSON DB session ended. Changes saved.\n\n")
	s.rule()
	s.state = StateTerminated
	return nil
}

// find asks for an attribute and a value, runs the query and prints what
// it found.
func (s *Session) find(ctx context.Context) (query.Result, error) {
	attr, err := ask(ctx, s, promptSearchBy, func(text string) (catalog.Attribute, error) {
		return validate.Attribute(text, false)
	})
	if err != nil {
		return query.Result{}, err
	}
	if s.records.Len() == 0 {
		s.printf("Unfortunately, there are no entries in the DB at the moment.\n")
		return query.Result{}, nil
	}

	value, err := s.collectText(ctx, promptValue)
	if err != nil {
		return query.Result{}, err
	}

	res := query.Match(s.records.All(), attr, value)
	s.printf("%s\n", res.Summary(attr, value))
	if res.Empty() {
		return res, nil
	}
	s.render(res.Records...)
	s.logger.Debug("query", "attribute", attr.String(), "exact", res.Exact, "matches", len(res.Records))
	return res, nil
}

// narrow runs find and reduces the result to one record. A single match is
// selected without asking; several matches need an id from the operator.
// ok is false when nothing matched.
func (s *Session) narrow(ctx context.Context) (catalog.Selection, bool, error) {
	res, err := s.find(ctx)
	if err != nil || res.Empty() {
		return catalog.Selection{}, false, err
	}
	if sel, ok := res.Single(); ok {
		return sel, true, nil
	}

	sel, err := ask(ctx, s, promptQueryID, func(text string) (catalog.Selection, error) {
		return validate.QueryID(text, res.Records)
	})
	if err != nil {
		return catalog.Selection{}, false, err
	}
	return sel, true, nil
}

// collectText reads one free-text answer. It never rejects.
func (s *Session) collectText(ctx context.Context, prompt string) (string, error) {
	return ask(ctx, s, prompt, func(text string) (string, error) { return text, nil })
}
