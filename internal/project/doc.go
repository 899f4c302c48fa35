// Package project implements the cfkit workflows: init, add-approuter,
// add-cds and add-cx-server. Each workflow validates everything it can
// before the first write, then copies templates, patches package.json and
// .gitignore and runs npm where asked.
//
// Collaborators are passed in through Deps so tests can substitute the npm
// runner, the version lookup and the prompter.
package project
