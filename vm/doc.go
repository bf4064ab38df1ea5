/*
Package vm implements the brainfuck virtual machine.

The loader turns program text into a Program: the eight recognised
instructions, in source order, with every bracket carrying the index of its
partner. Any other character is dropped. The VM then loops over the Program
with an instruction pointer and a data pointer into a fixed tape of
config.MemSize byte cells, until the instruction pointer runs off the end or
an instruction fails.
*/
package vm
