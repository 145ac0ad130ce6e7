// Package onlinehelp implements contextual online help: a tree of help
// topics backed by files, a registry keyed by topic path, and lookup of the
// topic registered for an object's interface and view name.
//
// Topics are registered on an OnlineHelp root, usually from declarations
// (see the directive package):
//
//	help, err := onlinehelp.New(fs, "Online Help", "help/welcome.stx")
//	if err != nil {
//		return err
//	}
//	_, err = help.RegisterHelpTopic(onlinehelp.Registration{
//		ID:        "contents",
//		Title:     "Folder contents",
//		DocPath:   "help/contents.rst",
//		Interface: "site.IFolder",
//		View:      "contents.html",
//	})
//
// A topic is found for a context object with TopicFor, which walks the
// object's provided interfaces in declaration order and returns the first
// topic registered for that interface and view name.
//
// The help tree is reachable from URLs through the "++help++" namespace
// segment, see Namespace.
package onlinehelp
