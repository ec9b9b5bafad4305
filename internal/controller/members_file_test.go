package controller

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LoadMembersFile", func() {
	write := func(body string) string {
		path := filepath.Join(GinkgoT().TempDir(), "members.yaml")
		Expect(os.WriteFile(path, []byte(body), 0o600)).To(Succeed())
		return path
	}

	It("reads the list and its members", func() {
		file, err := LoadMembersFile(write(`
listId: 8a2b1c
members:
  - email: ada@example.com
    emailType: text
    mergeVars:
      FNAME: Ada
  - email: grace@example.com
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(file.ListID).To(Equal("8a2b1c"))
		Expect(file.Members).To(HaveLen(2))
		Expect(file.Members[0].EmailType).To(Equal("text"))
		Expect(file.Members[0].MergeVars).To(HaveKeyWithValue("FNAME", "Ada"))
		Expect(file.Members[1].Email).To(Equal("grace@example.com"))
	})

	It("rejects unknown fields", func() {
		_, err := LoadMembersFile(write("members:\n  - mail: ada@example.com\n"))
		Expect(err).To(HaveOccurred())
	})

	It("rejects members without an email", func() {
		_, err := LoadMembersFile(write("members:\n  - email: \" \"\n"))
		Expect(err).To(MatchError(ContainSubstring("entry 0 has no email")))
	})

	It("fails on a missing file", func() {
		_, err := LoadMembersFile(filepath.Join(GinkgoT().TempDir(), "nope.yaml"))
		Expect(err).To(HaveOccurred())
	})
})
