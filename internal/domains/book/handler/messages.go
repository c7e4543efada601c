package handler

import (
	"errors"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/flash"
)

// bookErrorMap maps expected service errors to the message shown after redirect.
var bookErrorMap = []struct {
	err error
	msg flash.Message
}{
	{model.ErrInvalidBookID, flash.Error("Invalid book ID!")},
	{model.ErrBookNotFound, flash.Error("Book ID not found!")},
	{model.ErrDuplicateISBN, flash.Error("A book with this ISBN already exists!")},
	{model.ErrAuthorNotFound, flash.Error("Author not found! Please add the author first.")},
	{model.ErrInvalidInput, flash.Error("Please fill in every field; year and author must be numbers.")},
}

// messageFor reports whether err is an expected failure and, if so, its message.
func messageFor(err error) (flash.Message, bool) {
	for _, e := range bookErrorMap {
		if errors.Is(err, e.err) {
			return e.msg, true
		}
	}
	return flash.Message{}, false
}

func deleteMessages(result *model.DeleteResult) []flash.Message {
	msgs := []flash.Message{flash.Success("Book successfully deleted!")}
	if result.AuthorRemoved {
		msgs = append(msgs, flash.Info("The author had no other books and was removed as well."))
	}
	return msgs
}
