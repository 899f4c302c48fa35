// Package toolchain runs the external programs cfkit drives: npm for
// installs and version lookups, and npx for the Nest project generator.
// Commands go through the Runner interface so workflows can be tested with
// a fake.
package toolchain
